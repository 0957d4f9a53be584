package render

import "math"

// Test pattern palette indices: two checkerboard pairs (inside and outside
// the map bounds) and the map-center marker.
const (
	patternInsideA  = 0x10
	patternInsideB  = 0x12
	patternOutsideA = 0x14
	patternOutsideB = 0x16
	patternMarker   = 0x18

	markerRadius = 64.0 // world pixels
)

// renderTestPattern draws the NotReady diagnostic: a world-aligned
// checkerboard, colored by whether each pixel lies inside the map, with a
// circular marker at the map center. Deterministic for a given camera and
// map size.
func (r *Renderer) renderTestPattern() {
	mapW := float64(r.mapTileW * tilePixels)
	mapH := float64(r.mapTileH * tilePixels)
	centerX := mapW / 2
	centerY := mapH / 2
	radiusSq := markerRadius * markerRadius

	for y := 0; y < r.height; y++ {
		base := y * r.width
		for x := 0; x < r.width; x++ {
			wx, wy := r.ScreenToWorld(x, y)

			dx := wx - centerX
			dy := wy - centerY
			if mapW > 0 && dx*dx+dy*dy <= radiusSq {
				r.fb[base+x] = patternMarker
				continue
			}

			tx := int(math.Floor(wx / tilePixels))
			ty := int(math.Floor(wy / tilePixels))
			inside := mapW > 0 &&
				wx >= 0 && wy >= 0 && wx < mapW && wy < mapH

			checker := (tx+ty)&1 == 0
			switch {
			case inside && checker:
				r.fb[base+x] = patternInsideA
			case inside:
				r.fb[base+x] = patternInsideB
			case checker:
				r.fb[base+x] = patternOutsideA
			default:
				r.fb[base+x] = patternOutsideB
			}
		}
	}
}
