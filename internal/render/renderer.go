// Package render composites engine state into an indexed framebuffer:
// terrain megatiles, depth-sorted sprites, selection circles and unit bars,
// plus a downsampled minimap. The framebuffer stores palette indices; a GPU
// stage (or the AppendRGBA helper) resolves them through the active
// 256-entry color table.
package render

import (
	"fmt"
	"math"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
	"github.com/dkyazzentwatwa/sc-ios/internal/logging"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

const (
	// MinZoom and MaxZoom bound the camera zoom factor.
	MinZoom = 0.5
	MaxZoom = 4.0

	tilePixels = tileset.MegatileSize

	// Sprite candidates are gathered from this many tile rows above and
	// below the camera's vertical extent.
	collectMargin = 4

	paletteBytes = 256 * 4
)

// Renderer owns the indexed framebuffer, the active palette and every
// per-tick arena. It is single-threaded: all setters and Tick run on the
// same goroutine that advances the simulation.
type Renderer struct {
	width, height int
	fb            []uint8
	palette       [paletteBytes]uint8

	tilesets *tileset.Table
	tsIndex  int
	active   *tileset.Tileset

	mapTiles           []uint16
	mapTileW, mapTileH int

	cameraX, cameraY float64
	zoom             float64

	circles      [10]*grp.GRP
	playerColors [game.MaxPlayers][8]uint8

	// Per-tick arenas, pre-sized by a counting pre-pass and rebuilt every
	// tick. Draw items index into sprites; nothing outlives the tick.
	sprites []spriteInfo
	items   []drawItem
	buckets [][]int
	order   []int

	log *logging.Logger
}

// New constructs a renderer with the given framebuffer size. The renderer
// starts NotReady and draws the diagnostic test pattern until a tileset is
// activated.
func New(width, height int) *Renderer {
	r := &Renderer{
		log:  logging.Subsystem("render"),
		zoom: 1.0,
	}
	r.Resize(width, height)
	for p := 0; p < game.MaxPlayers; p++ {
		for i := 0; i < 8; i++ {
			// Identity ramp until real team colors are supplied.
			r.playerColors[p][i] = uint8(8 + i)
		}
	}
	// Grayscale fallback palette so the sink is never empty.
	for i := 0; i < 256; i++ {
		r.palette[i*4] = uint8(i)
		r.palette[i*4+1] = uint8(i)
		r.palette[i*4+2] = uint8(i)
		r.palette[i*4+3] = 255
	}
	r.palette[3] = 0
	return r
}

// Resize replaces the framebuffer. Zero or negative dimensions degrade to
// a 1x1 buffer rather than a panic downstream.
func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	r.fb = make([]uint8, width*height)
}

// Size returns the framebuffer dimensions.
func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// Framebuffer exposes the indexed pixel buffer (row-major, pitch = width).
// Valid until the next Resize.
func (r *Renderer) Framebuffer() []uint8 { return r.fb }

// Palette exposes the active 256-entry RGBA color table.
func (r *Renderer) Palette() []uint8 { return r.palette[:] }

// Ready reports whether a tileset and palette are active.
func (r *Renderer) Ready() bool { return r.active != nil }

// Clear resets the framebuffer to palette index 0.
func (r *Renderer) Clear() {
	for i := range r.fb {
		r.fb[i] = 0
	}
}

// SetTilesets attaches the tileset table used by SetTileset.
func (r *Renderer) SetTilesets(t *tileset.Table) { r.tilesets = t }

// SetTileset activates tileset index: its palette replaces the active color
// table wholesale and terrain starts drawing from its tables. A tileset
// that failed to load leaves the renderer in its previous state.
func (r *Renderer) SetTileset(index int) error {
	if r.tilesets == nil {
		return fmt.Errorf("set tileset %d: no tileset table attached", index)
	}
	ts, err := r.tilesets.Get(index)
	if err != nil {
		return err
	}
	r.tsIndex = index
	r.active = ts
	copy(r.palette[:], ts.Palette[:])
	r.log.Info("tileset %d (%s) active", index, tileset.Names[index])
	return nil
}

// TilesetIndex returns the most recently requested tileset index.
func (r *Renderer) TilesetIndex() int { return r.tsIndex }

// SetMapTiles supplies the map's megatile grid (row-major, width x height
// in tile units). The high flag bit of each entry is masked off at draw
// time.
func (r *Renderer) SetMapTiles(tiles []uint16, width, height int) {
	if width < 0 || height < 0 || len(tiles) < width*height {
		r.log.Warn("map tile grid %dx%d with %d entries ignored", width, height, len(tiles))
		return
	}
	r.mapTiles = tiles
	r.mapTileW = width
	r.mapTileH = height
}

// MapPixelSize returns the map dimensions in pixels.
func (r *Renderer) MapPixelSize() (w, h int) {
	return r.mapTileW * tilePixels, r.mapTileH * tilePixels
}

// SetCamera moves the camera center to world position (x, y).
func (r *Renderer) SetCamera(x, y float64) {
	r.cameraX = x
	r.cameraY = y
}

// Camera returns the camera center in world coordinates.
func (r *Renderer) Camera() (x, y float64) { return r.cameraX, r.cameraY }

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (r *Renderer) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	r.zoom = z
}

// Zoom returns the current zoom factor.
func (r *Renderer) Zoom() float64 { return r.zoom }

// SetSelectionCircles supplies the selection circle sprites by size index.
func (r *Renderer) SetSelectionCircles(circles []*grp.GRP) {
	for i := range r.circles {
		if i < len(circles) {
			r.circles[i] = circles[i]
		} else {
			r.circles[i] = nil
		}
	}
}

// SetPlayerColors slices per-player 8-color ramps from a flat blob of
// 8 bytes per player. A short blob leaves the remaining players on their
// previous ramps.
func (r *Renderer) SetPlayerColors(blob []byte) {
	for p := 0; p < game.MaxPlayers && (p+1)*8 <= len(blob); p++ {
		copy(r.playerColors[p][:], blob[p*8:(p+1)*8])
	}
}

// WorldToScreen transforms a world position into framebuffer coordinates:
// screen = (world - camera) * zoom + viewportCenter.
func (r *Renderer) WorldToScreen(wx, wy float64) (sx, sy int) {
	sx = int(math.Floor((wx-r.cameraX)*r.zoom)) + r.width/2
	sy = int(math.Floor((wy-r.cameraY)*r.zoom)) + r.height/2
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (r *Renderer) ScreenToWorld(sx, sy int) (wx, wy float64) {
	wx = float64(sx-r.width/2)/r.zoom + r.cameraX
	wy = float64(sy-r.height/2)/r.zoom + r.cameraY
	return wx, wy
}

// clip returns the framebuffer bounds as a codec clip rectangle.
func (r *Renderer) clip() grp.Rect {
	return grp.Rect{X: 0, Y: 0, W: r.width, H: r.height}
}

// Tick renders one frame of snap into the framebuffer. NotReady renders
// the diagnostic test pattern instead of the normal pipeline. The snapshot
// is read-only and must stay unchanged until Tick returns.
func (r *Renderer) Tick(snap *game.Snapshot) {
	if r.active == nil {
		r.renderTestPattern()
		return
	}

	r.Clear()
	r.drawTerrain()
	r.collect(snap)
	r.drawItems()
	r.drawBars()
}
