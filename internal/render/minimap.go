package render

import (
	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

const (
	minimapMinSize = 64
	minimapMaxSize = 256

	// Megatile index thresholds picking the elevated/water color triples.
	minimapElevated = 200
	minimapWater    = 50
)

// Base, elevated and water terrain color triples per tileset index.
var minimapTerrain = [tileset.NumTilesets][3][3]uint8{
	{{96, 72, 48}, {140, 110, 72}, {40, 50, 80}},      // badlands
	{{90, 90, 100}, {130, 130, 140}, {30, 30, 60}},    // platform
	{{70, 70, 78}, {110, 110, 120}, {24, 30, 52}},     // install
	{{80, 48, 40}, {130, 80, 56}, {90, 30, 20}},       // ashworld
	{{40, 88, 40}, {80, 130, 70}, {30, 50, 110}},      // jungle
	{{130, 110, 70}, {170, 150, 100}, {60, 70, 90}},   // desert
	{{150, 160, 175}, {200, 210, 220}, {70, 90, 130}}, // ice
	{{70, 60, 85}, {110, 95, 130}, {35, 35, 70}},      // twilight
}

// Owner dot colors for players 0-7; other owners fall back to gray.
var minimapOwnerColors = [8][3]uint8{
	{244, 4, 4},     // red
	{12, 72, 204},   // blue
	{44, 180, 148},  // teal
	{136, 64, 156},  // purple
	{248, 140, 20},  // orange
	{112, 48, 20},   // brown
	{204, 224, 208}, // white
	{252, 252, 56},  // yellow
}

var minimapGray = [3]uint8{128, 128, 128}

func clampMinimapAxis(tiles int) int {
	if tiles < minimapMinSize {
		return minimapMinSize
	}
	if tiles > minimapMaxSize {
		return minimapMaxSize
	}
	return tiles
}

// Minimap downsamples the full map into a fresh RGBA buffer (caller-owned)
// and returns it with its dimensions. Terrain is tinted per tileset,
// visible units overlay as 2x2 owner-colored dots and the camera viewport
// as a 1-pixel white outline. Runs on its own cadence, reading the same
// snapshot as Tick.
func (r *Renderer) Minimap(snap *game.Snapshot) (pix []byte, w, h int) {
	w = clampMinimapAxis(r.mapTileW)
	h = clampMinimapAxis(r.mapTileH)
	pix = make([]byte, w*h*4)

	colors := &minimapTerrain[r.tsIndex&7]

	for py := 0; py < h; py++ {
		ty := py * r.mapTileH / h
		for px := 0; px < w; px++ {
			tx := px * r.mapTileW / w

			var c [3]uint8
			if tx < r.mapTileW && ty < r.mapTileH && r.mapTileW > 0 {
				index := int(r.mapTiles[ty*r.mapTileW+tx] & megatileIndexMask)
				switch {
				case index > minimapElevated:
					c = colors[1]
				case index < minimapWater:
					c = colors[2]
				default:
					c = colors[0]
				}
				// Deterministic per-tile variation, +-10 per channel.
				v := index%20 - 10
				for i := range c {
					c[i] = clampChannel(int(c[i]) + v)
				}
			}

			o := (py*w + px) * 4
			pix[o] = c[0]
			pix[o+1] = c[1]
			pix[o+2] = c[2]
			pix[o+3] = 255
		}
	}

	if snap != nil {
		r.minimapUnits(snap, pix, w, h)
	}
	r.minimapViewport(pix, w, h)

	return pix, w, h
}

func (r *Renderer) minimapUnits(snap *game.Snapshot, pix []byte, w, h int) {
	mapW, mapH := r.MapPixelSize()
	if mapW == 0 || mapH == 0 {
		return
	}

	for i := range snap.Sprites {
		s := &snap.Sprites[i]
		if s.Hidden() {
			continue
		}

		c := minimapGray
		if s.Owner >= 0 && s.Owner < len(minimapOwnerColors) {
			c = minimapOwnerColors[s.Owner]
		}

		px := s.Position.X * w / mapW
		py := s.Position.Y * h / mapH
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				putMinimapPixel(pix, w, h, px+dx, py+dy, c)
			}
		}
	}
}

// minimapViewport outlines the camera's world-space viewport, clamped into
// the minimap bounds.
func (r *Renderer) minimapViewport(pix []byte, w, h int) {
	mapW, mapH := r.MapPixelSize()
	if mapW == 0 || mapH == 0 {
		return
	}

	left, top := r.ScreenToWorld(0, 0)
	right, bottom := r.ScreenToWorld(r.width, r.height)

	x0 := clampInt(int(left)*w/mapW, 0, w-1)
	x1 := clampInt(int(right)*w/mapW, 0, w-1)
	y0 := clampInt(int(top)*h/mapH, 0, h-1)
	y1 := clampInt(int(bottom)*h/mapH, 0, h-1)

	white := [3]uint8{255, 255, 255}
	for x := x0; x <= x1; x++ {
		putMinimapPixel(pix, w, h, x, y0, white)
		putMinimapPixel(pix, w, h, x, y1, white)
	}
	for y := y0; y <= y1; y++ {
		putMinimapPixel(pix, w, h, x0, y, white)
		putMinimapPixel(pix, w, h, x1, y, white)
	}
}

func putMinimapPixel(pix []byte, w, h, x, y int, c [3]uint8) {
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	o := (y*w + x) * 4
	pix[o] = c[0]
	pix[o+1] = c[1]
	pix[o+2] = c[2]
	pix[o+3] = 255
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
