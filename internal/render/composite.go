package render

import (
	"math"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
)

// megatileIndexMask strips the flag bits the engine packs into the high
// bit of each map tile entry.
const megatileIndexMask = 0x7FFF

// drawTerrain draws every megatile intersecting the camera viewport.
func (r *Renderer) drawTerrain() {
	if r.mapTileW == 0 || r.mapTileH == 0 {
		return
	}

	left, top := r.ScreenToWorld(0, 0)
	right, bottom := r.ScreenToWorld(r.width, r.height)

	tx0 := int(math.Floor(left / tilePixels))
	ty0 := int(math.Floor(top / tilePixels))
	tx1 := int(math.Floor(right/tilePixels)) + 1
	ty1 := int(math.Floor(bottom/tilePixels)) + 1

	if tx0 < 0 {
		tx0 = 0
	}
	if ty0 < 0 {
		ty0 = 0
	}
	if tx1 > r.mapTileW {
		tx1 = r.mapTileW
	}
	if ty1 > r.mapTileH {
		ty1 = r.mapTileH
	}

	for ty := ty0; ty < ty1; ty++ {
		for tx := tx0; tx < tx1; tx++ {
			index := int(r.mapTiles[ty*r.mapTileW+tx] & megatileIndexMask)
			sx, sy := r.WorldToScreen(float64(tx*tilePixels), float64(ty*tilePixels))
			r.active.BlitMegatile(index, r.fb, r.width, sx, sy, r.width, r.height)
		}
	}
}

// drawItems draws the sorted item list back-to-front. The selection circle
// of a selected sprite goes down right before its first non-shadow image.
func (r *Renderer) drawItems() {
	clip := r.clip()
	for i := range r.items {
		it := &r.items[i]
		si := &r.sprites[it.sprite]

		if si.selected && !si.circleDrawn && it.modifier != game.ModifierShadow {
			r.drawSelectionCircle(si)
			si.circleDrawn = true
		}

		if it.modifier == game.ModifierShadow {
			grp.Draw(it.frame, it.flipped, r.fb, r.width, it.x, it.y, clip, grp.ShadowRemap{})
			continue
		}
		grp.Draw(it.frame, it.flipped, r.fb, r.width, it.x, it.y, clip,
			grp.PlayerRemap{Colors: &r.playerColors[si.owner]})
	}
}

// drawSelectionCircle draws the sprite's circle sprite at its screen
// center, pushed down by the per-type vertical offset and tinted with the
// owner's primary team color.
func (r *Renderer) drawSelectionCircle(si *spriteInfo) {
	if si.circle < 0 || si.circle >= len(r.circles) {
		return
	}
	g := r.circles[si.circle]
	if g == nil {
		return
	}
	frame := g.Frame(0)
	if frame == nil {
		return
	}

	x := si.centerX - g.Width/2 + frame.X
	y := si.centerY + si.circleVPos - g.Height/2 + frame.Y
	grp.Draw(frame, false, r.fb, r.width, x, y, r.clip(),
		grp.SelectionRemap{Tint: r.playerColors[si.owner][0]})
}
