package demo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkyazzentwatwa/sc-ios/internal/render"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

func TestNewScene_Synthetic(t *testing.T) {
	s, err := NewScene(nil, 3)
	require.NoError(t, err)

	// With no table supplied, the synthetic tileset lives at slot 0.
	require.Equal(t, 0, s.Tileset)
	require.True(t, s.Table.AnyLoaded())

	ts, err := s.Table.Get(0)
	require.NoError(t, err)
	require.NotEmpty(t, ts.Megatiles)

	require.Equal(t, mapTileW, s.TileW)
	require.Equal(t, mapTileH, s.TileH)
	require.Len(t, s.Tiles, mapTileW*mapTileH)
	for i, tile := range s.Tiles {
		require.Less(t, int(tile), len(ts.Megatiles), "tile %d", i)
	}

	require.Len(t, s.Circles, 10)
	require.NotNil(t, s.Circles[0].Frame(0))
	require.Len(t, s.PlayerColors, 12*8)
}

func TestAdvance(t *testing.T) {
	s, err := NewScene(nil, 0)
	require.NoError(t, err)

	snap := s.Advance(0)
	require.Len(t, snap.Sprites, numUnits)

	mapW := mapTileW * tileset.MegatileSize
	mapH := mapTileH * tileset.MegatileSize
	for i, sp := range snap.Sprites {
		require.GreaterOrEqual(t, sp.Position.X, 0, "unit %d", i)
		require.Less(t, sp.Position.X, mapW, "unit %d", i)
		require.GreaterOrEqual(t, sp.Position.Y, 0, "unit %d", i)
		require.Less(t, sp.Position.Y, mapH, "unit %d", i)

		require.Len(t, sp.Images, 2)
		require.NotNil(t, sp.Images[0].GRP)
		require.Positive(t, sp.MaxHP)
		require.LessOrEqual(t, sp.HP, sp.MaxHP)
	}

	// Deterministic for a given tick.
	again := s.Advance(0)
	require.Equal(t, snap.Sprites[0].Position, again.Sprites[0].Position)

	// Every third unit starts selected; select-all covers the rest.
	require.True(t, snap.Selected[0])
	require.False(t, snap.Selected[1])
	s.SetSelectAll(true)
	snap = s.Advance(1)
	for i := range snap.Sprites {
		require.True(t, snap.Selected[i])
	}
}

func TestScene_RendersWithoutTestPattern(t *testing.T) {
	s, err := NewScene(nil, 0)
	require.NoError(t, err)

	r := render.New(320, 240)
	r.SetTilesets(s.Table)
	require.NoError(t, r.SetTileset(s.Tileset))
	r.SetMapTiles(s.Tiles, s.TileW, s.TileH)
	r.SetSelectionCircles(s.Circles)
	r.SetPlayerColors(s.PlayerColors)

	w, h := r.MapPixelSize()
	r.SetCamera(float64(w)/2, float64(h)/2)

	r.Tick(s.Advance(0))

	// Terrain must cover the whole viewport: no pixel left at index 0.
	for i, v := range r.Framebuffer() {
		require.NotEqual(t, uint8(0), v, "pixel %d", i)
	}
}

func TestSynthPalette_Layout(t *testing.T) {
	p := synthPalette()
	require.Len(t, p, 1024)

	ts, err := tileset.Load(synthGraphics(), synthMegatiles(), p)
	require.NoError(t, err)

	// Entry 0 transparent, everything else opaque after loading.
	require.Equal(t, uint8(0), ts.Palette[3])
	require.Equal(t, uint8(255), ts.Palette[0x21*4+3])
}
