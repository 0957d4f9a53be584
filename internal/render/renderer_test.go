package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

// solidTileset builds a table whose slot 0 holds a single megatile filled
// entirely with the given palette index.
func solidTileset(t *testing.T, value uint8) *tileset.Table {
	t.Helper()

	graphics := make([]byte, 64)
	for i := range graphics {
		graphics[i] = value
	}
	megatiles := make([]byte, 32) // 16 refs, all graphic 0 unflipped
	palette := make([]byte, 1024)
	for i := 0; i < 256; i++ {
		palette[i*4] = uint8(i)
		palette[i*4+3] = 255
	}

	table := tileset.NewTable()
	require.NoError(t, table.Load(0, graphics, megatiles, palette))
	return table
}

// solidGRP builds a one-frame w-by-h sprite filled with value.
func solidGRP(t *testing.T, w, h int, value uint8) *grp.GRP {
	t.Helper()

	pixels := make([]byte, w*h)
	for i := range pixels {
		pixels[i] = value
	}
	data, err := grp.Build(w, h, []grp.FrameImage{{W: w, H: h, Pixels: pixels}})
	require.NoError(t, err)
	g, err := grp.Parse(data)
	require.NoError(t, err)
	return g
}

func readyRenderer(t *testing.T, w, h int, terrain uint8) *Renderer {
	t.Helper()

	r := New(w, h)
	r.SetTilesets(solidTileset(t, terrain))
	require.NoError(t, r.SetTileset(0))
	return r
}

func TestWorldToScreen(t *testing.T) {
	r := New(640, 480)
	r.SetCamera(100, 100)

	// Camera position lands at the viewport center.
	sx, sy := r.WorldToScreen(100, 100)
	require.Equal(t, 320, sx)
	require.Equal(t, 240, sy)

	sx, sy = r.WorldToScreen(90, 110)
	require.Equal(t, 310, sx)
	require.Equal(t, 250, sy)

	// Zoom scales offsets from the camera, not absolute positions.
	r.SetZoom(2)
	sx, sy = r.WorldToScreen(110, 100)
	require.Equal(t, 340, sx)
	require.Equal(t, 240, sy)

	wx, wy := r.ScreenToWorld(340, 240)
	require.Equal(t, 110.0, wx)
	require.Equal(t, 100.0, wy)
}

func TestSetZoom_Clamped(t *testing.T) {
	r := New(64, 64)

	r.SetZoom(0.01)
	require.Equal(t, MinZoom, r.Zoom())

	r.SetZoom(100)
	require.Equal(t, MaxZoom, r.Zoom())

	r.SetZoom(1.5)
	require.Equal(t, 1.5, r.Zoom())
}

func TestResize_Degenerate(t *testing.T) {
	r := New(0, -5)
	w, h := r.Size()
	require.Equal(t, 1, w)
	require.Equal(t, 1, h)
	require.Len(t, r.Framebuffer(), 1)
}

func TestSetTileset(t *testing.T) {
	r := New(32, 32)
	require.False(t, r.Ready())
	require.Error(t, r.SetTileset(0)) // no table attached

	r.SetTilesets(solidTileset(t, 0x55))
	require.Error(t, r.SetTileset(3)) // slot never loaded
	require.False(t, r.Ready())

	require.NoError(t, r.SetTileset(0))
	require.True(t, r.Ready())
	require.Equal(t, 0, r.TilesetIndex())

	// The tileset's palette replaced the fallback wholesale.
	require.Equal(t, uint8(7), r.Palette()[7*4])
	require.Equal(t, uint8(0), r.Palette()[3])
}

func TestSetMapTiles_Validation(t *testing.T) {
	r := New(32, 32)

	r.SetMapTiles(make([]uint16, 3), 2, 2) // too few entries
	w, h := r.MapPixelSize()
	require.Equal(t, 0, w)
	require.Equal(t, 0, h)

	r.SetMapTiles(make([]uint16, 4), 2, 2)
	w, h = r.MapPixelSize()
	require.Equal(t, 64, w)
	require.Equal(t, 64, h)
}

func TestSetPlayerColors(t *testing.T) {
	r := New(8, 8)

	blob := make([]byte, 16)
	for i := range blob {
		blob[i] = uint8(0xA0 + i)
	}
	r.SetPlayerColors(blob)

	require.Equal(t, uint8(0xA0), r.playerColors[0][0])
	require.Equal(t, uint8(0xAF), r.playerColors[1][7])
	// Players past the blob keep the identity ramp.
	require.Equal(t, uint8(8), r.playerColors[2][0])
}

func TestTick_TerrainFillsViewport(t *testing.T) {
	// One megatile map; the camera centered on the tile makes it cover the
	// 32x32 viewport exactly.
	r := readyRenderer(t, 32, 32, 0x55)
	r.SetMapTiles([]uint16{0}, 1, 1)
	r.SetCamera(16, 16)

	r.Tick(&game.Snapshot{})

	for i, v := range r.Framebuffer() {
		require.Equal(t, uint8(0x55), v, "pixel %d", i)
	}
}

func TestTick_SpriteAtCenter(t *testing.T) {
	r := readyRenderer(t, 640, 480, 0x55)
	r.SetMapTiles(make([]uint16, 30*20), 30, 20)
	r.SetCamera(100, 100)

	snap := &game.Snapshot{
		Sprites: []game.Sprite{{
			Position: game.Point{X: 100, Y: 100},
			Images:   []game.Image{{GRP: solidGRP(t, 2, 2, 0x21)}},
		}},
	}
	r.Tick(snap)

	// A 2x2 sprite at the camera position covers the two pixels either
	// side of the viewport center on both axes.
	fb := r.Framebuffer()
	for _, y := range []int{239, 240} {
		for _, x := range []int{319, 320} {
			require.Equal(t, uint8(0x21), fb[y*640+x], "(%d,%d)", x, y)
		}
	}
	require.Equal(t, uint8(0x55), fb[239*640+318])
	require.Equal(t, uint8(0x55), fb[241*640+320])
}

func TestTick_HiddenSpriteSkipped(t *testing.T) {
	r := readyRenderer(t, 32, 32, 0x55)
	r.SetMapTiles([]uint16{0}, 1, 1)
	r.SetCamera(16, 16)

	snap := &game.Snapshot{
		Sprites: []game.Sprite{{
			Position: game.Point{X: 16, Y: 16},
			Flags:    game.FlagHidden,
			Images:   []game.Image{{GRP: solidGRP(t, 2, 2, 0x21)}},
		}},
	}
	r.Tick(snap)

	for _, v := range r.Framebuffer() {
		require.Equal(t, uint8(0x55), v)
	}
}

func TestTick_ShadowDarkensTerrain(t *testing.T) {
	r := readyRenderer(t, 32, 32, 0x55)
	r.SetMapTiles([]uint16{0}, 1, 1)
	r.SetCamera(16, 16)

	snap := &game.Snapshot{
		Sprites: []game.Sprite{{
			Position: game.Point{X: 16, Y: 16},
			Images: []game.Image{{
				GRP:      solidGRP(t, 2, 2, 1),
				Modifier: game.ModifierShadow,
			}},
		}},
	}
	r.Tick(snap)

	// Shadow pixels darken what is under them by 16.
	fb := r.Framebuffer()
	require.Equal(t, uint8(0x45), fb[15*32+15])
	require.Equal(t, uint8(0x55), fb[15*32+13])
}

func TestTick_PlayerColorRemap(t *testing.T) {
	r := readyRenderer(t, 32, 32, 0x55)
	r.SetMapTiles([]uint16{0}, 1, 1)
	r.SetCamera(16, 16)

	blob := make([]byte, 8*game.MaxPlayers)
	for i := range blob {
		blob[i] = 0xC0
	}
	r.SetPlayerColors(blob)

	// Index 9 sits in the team color band and must remap to the ramp.
	snap := &game.Snapshot{
		Sprites: []game.Sprite{{
			Position: game.Point{X: 16, Y: 16},
			Owner:    3,
			Images:   []game.Image{{GRP: solidGRP(t, 2, 2, 9)}},
		}},
	}
	r.Tick(snap)

	require.Equal(t, uint8(0xC0), r.Framebuffer()[15*32+15])
}

func TestTick_SelectionCircle(t *testing.T) {
	r := readyRenderer(t, 640, 480, 0x55)
	r.SetMapTiles(make([]uint16, 30*20), 30, 20)
	r.SetCamera(100, 100)
	r.SetSelectionCircles([]*grp.GRP{solidGRP(t, 6, 6, 1)})

	snap := &game.Snapshot{
		Sprites: []game.Sprite{{
			Position:        game.Point{X: 100, Y: 100},
			SelectionCircle: 0,
			Images:          []game.Image{{GRP: solidGRP(t, 2, 2, 0x21)}},
		}},
		Selected: []bool{true},
	}
	r.Tick(snap)

	fb := r.Framebuffer()
	// Circle pixels take the owner's primary team color (identity ramp: 8);
	// the unit body draws on top of the circle's center.
	require.Equal(t, uint8(8), fb[237*640+317])
	require.Equal(t, uint8(0x21), fb[240*640+320])

	// Unselected, the circle is absent.
	snap.Selected[0] = false
	r.Tick(snap)
	require.Equal(t, uint8(0x55), r.Framebuffer()[237*640+317])
}

func TestTestPattern_Deterministic(t *testing.T) {
	r := New(16, 16)
	r.Tick(nil)

	first := make([]uint8, len(r.Framebuffer()))
	copy(first, r.Framebuffer())
	r.Tick(nil)
	require.Equal(t, first, r.Framebuffer())

	// No map: every pixel uses the outside checkerboard pair.
	for _, v := range first {
		require.Contains(t, []uint8{patternOutsideA, patternOutsideB}, v)
	}
}

func TestTestPattern_MarkerAtMapCenter(t *testing.T) {
	r := New(16, 16)
	r.SetMapTiles(make([]uint16, 4), 2, 2)
	r.SetCamera(32, 32) // map center of a 64x64-pixel map
	r.Tick(nil)

	require.Equal(t, uint8(patternMarker), r.Framebuffer()[8*16+8])
}
