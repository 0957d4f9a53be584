package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
)

func TestMinimap_SizeClamps(t *testing.T) {
	r := New(64, 64)

	// No map at all still yields the minimum canvas.
	pix, w, h := r.Minimap(nil)
	require.Equal(t, 64, w)
	require.Equal(t, 64, h)
	require.Len(t, pix, 64*64*4)

	r.SetMapTiles(make([]uint16, 300*40), 300, 40)
	_, w, h = r.Minimap(nil)
	require.Equal(t, 256, w)
	require.Equal(t, 64, h)

	r.SetMapTiles(make([]uint16, 128*96), 128, 96)
	_, w, h = r.Minimap(nil)
	require.Equal(t, 128, w)
	require.Equal(t, 96, h)
}

func TestMinimap_OpaqueEverywhere(t *testing.T) {
	r := New(64, 64)
	r.SetMapTiles(make([]uint16, 64*64), 64, 64)

	pix, w, h := r.Minimap(nil)
	for i := 0; i < w*h; i++ {
		require.Equal(t, uint8(255), pix[i*4+3], "pixel %d", i)
	}
}

func TestMinimap_TerrainClasses(t *testing.T) {
	// One tile per minimap pixel. Index 0 classifies as water, 110 as
	// base and 310 as elevated; each perturbs by index%20-10, which is
	// zero for the latter two.
	tiles := make([]uint16, 64*64)
	tiles[1] = 110
	tiles[2] = 310
	r := New(64, 64)
	r.SetMapTiles(tiles, 64, 64)
	r.SetCamera(1024, 1024) // park the viewport outline mid-map

	pix, _, _ := r.Minimap(nil)

	water := minimapTerrain[0][2]
	require.Equal(t, water[0]-10, pix[0])
	require.Equal(t, water[1]-10, pix[1])
	require.Equal(t, water[2]-10, pix[2])

	base := minimapTerrain[0][0]
	require.Equal(t, base[0], pix[4])
	require.Equal(t, base[1], pix[5])

	elevated := minimapTerrain[0][1]
	require.Equal(t, elevated[0], pix[8])
}

func TestMinimap_UnitDots(t *testing.T) {
	r := New(64, 64)
	r.SetMapTiles(make([]uint16, 64*64), 64, 64) // 2048x2048 world pixels
	r.SetCamera(1024, 1024)

	snap := &game.Snapshot{Sprites: []game.Sprite{
		{Position: game.Point{X: 320, Y: 320}, Owner: 1},
		{Position: game.Point{X: 640, Y: 320}, Owner: 50}, // out-of-range owner
		{Position: game.Point{X: 960, Y: 320}, Flags: game.FlagHidden},
	}}
	pix, w, _ := r.Minimap(snap)

	at := func(x, y int) [3]uint8 {
		o := (y*w + x) * 4
		return [3]uint8{pix[o], pix[o+1], pix[o+2]}
	}

	// World (320,320) maps to minimap (10,10); dots are 2x2.
	require.Equal(t, minimapOwnerColors[1], at(10, 10))
	require.Equal(t, minimapOwnerColors[1], at(11, 11))

	require.Equal(t, minimapGray, at(20, 10))

	// Hidden sprites leave the terrain alone.
	water := at(0, 0)
	require.Equal(t, water, at(30, 10))
}

func TestMinimap_ViewportOutline(t *testing.T) {
	r := New(128, 128)
	r.SetMapTiles(make([]uint16, 64*64), 64, 64)
	r.SetCamera(1024, 1024)

	pix, w, h := r.Minimap(nil)

	// Viewport spans world [960,1088) on both axes: minimap [30,34).
	x0 := 960 * w / 2048
	x1 := 1088 * h / 2048
	white := [3]uint8{255, 255, 255}

	at := func(x, y int) [3]uint8 {
		o := (y*w + x) * 4
		return [3]uint8{pix[o], pix[o+1], pix[o+2]}
	}

	require.Equal(t, white, at(x0, x0))
	require.Equal(t, white, at(x1, x0))
	require.Equal(t, white, at(x0+1, x0)) // top edge
	require.Equal(t, white, at(x0, x0+1)) // left edge
	require.NotEqual(t, white, at(x0+1, x0+1))
}

func TestMinimap_ViewportClampedToBounds(t *testing.T) {
	r := New(512, 512)
	r.SetMapTiles(make([]uint16, 64*64), 64, 64)
	r.SetCamera(0, 0) // half the viewport hangs off the map

	pix, w, h := r.Minimap(nil)

	white := [3]uint8{255, 255, 255}
	require.Equal(t, white, [3]uint8{pix[0], pix[1], pix[2]})

	// Every outline pixel stayed inside the canvas (nothing wrapped to
	// the far edge rows).
	for x := 0; x < w; x++ {
		o := ((h-1)*w + x) * 4
		require.NotEqual(t, white, [3]uint8{pix[o], pix[o+1], pix[o+2]})
	}
}
