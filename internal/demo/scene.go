// Package demo builds a small self-contained world for the preview server:
// a synthetic tileset, a few animated units with GRP sprites, and a
// per-tick snapshot. It stands in for the real simulation engine when no
// game data is configured.
package demo

import (
	"fmt"
	"math"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

const (
	mapTileW = 64
	mapTileH = 48

	numUnits = 12
)

// Scene owns everything the renderer needs for a demo session.
type Scene struct {
	Table   *tileset.Table
	Tileset int

	Tiles        []uint16
	TileW, TileH int

	Circles      []*grp.GRP
	PlayerColors []byte

	unitGRP   *grp.GRP
	unitData  []byte
	snap      game.Snapshot
	selectAll bool
}

// NewScene builds a scene around table, or a fully synthetic tileset at
// slot 0 when table is nil.
func NewScene(table *tileset.Table, tsIndex int) (*Scene, error) {
	s := &Scene{Tileset: tsIndex}

	if table == nil {
		table = tileset.NewTable()
		if err := table.Load(0, synthGraphics(), synthMegatiles(), synthPalette()); err != nil {
			return nil, fmt.Errorf("synthetic tileset: %w", err)
		}
		s.Tileset = 0
	}
	s.Table = table

	ts, err := table.Get(s.Tileset)
	if err != nil {
		return nil, err
	}

	s.TileW = mapTileW
	s.TileH = mapTileH
	s.Tiles = make([]uint16, mapTileW*mapTileH)
	mtCount := len(ts.Megatiles)
	for i := range s.Tiles {
		// Deterministic scatter over the available megatiles.
		s.Tiles[i] = uint16((i * 2654435761 >> 8) % mtCount)
	}

	if err := s.buildSprites(); err != nil {
		return nil, err
	}

	s.PlayerColors = playerColorBlob()

	s.snap.Sprites = make([]game.Sprite, numUnits)
	s.snap.Selected = make([]bool, numUnits)

	return s, nil
}

// SetSelectAll toggles selection of every unit (drives circles and bars).
func (s *Scene) SetSelectAll(on bool) { s.selectAll = on }

// Advance recomputes the snapshot for the given tick. The returned
// snapshot is valid until the next Advance call.
func (s *Scene) Advance(tick int) *game.Snapshot {
	t := float64(tick)
	mapW := float64(mapTileW * tileset.MegatileSize)
	mapH := float64(mapTileH * tileset.MegatileSize)

	for i := 0; i < numUnits; i++ {
		phase := float64(i) * (2 * math.Pi / numUnits)
		cx := mapW/2 + math.Cos(t/90+phase)*mapW/4
		cy := mapH/2 + math.Sin(t/90+phase)*mapH/5

		hp := 40 + int(30*math.Sin(t/50+phase)) // oscillate for bar colors

		s.snap.Sprites[i] = game.Sprite{
			Position:  game.Point{X: int(cx), Y: int(cy)},
			Owner:     i % 4,
			Elevation: 4,
			Images: []game.Image{
				{GRP: s.unitGRP, FrameIndex: (tick / 8) % 2, Flipped: math.Cos(t/90+phase) < 0},
				{GRP: s.unitGRP, FrameIndex: (tick / 8) % 2, Modifier: game.ModifierShadow,
					Offset: game.Point{X: 2, Y: 4}},
			},
			SelectionCircle:     1,
			SelectionCircleVPos: 6,
			HealthBarWidth:      21,
			HP:                  hp,
			MaxHP:               80,
			Shields:             i * 7 % 50,
			MaxShields:          50,
			Energy:              tick % 100,
			MaxEnergy:           100,
		}
		s.snap.Selected[i] = s.selectAll || i%3 == 0
	}

	return &s.snap
}

// buildSprites encodes the unit body and selection circle GRPs.
func (s *Scene) buildSprites() error {
	const uw, uh = 16, 16
	frames := make([]grp.FrameImage, 2)
	for fi := range frames {
		pix := make([]byte, uw*uh)
		for y := 0; y < uh; y++ {
			for x := 0; x < uw; x++ {
				dx := float64(x) - uw/2 + 0.5
				dy := float64(y) - uh/2 + 0.5
				d := math.Sqrt(dx*dx + dy*dy)
				limit := 6.5
				if fi == 1 {
					limit = 7.0 // second pose bulges slightly
				}
				switch {
				case d > limit:
					// transparent
				case d > limit-1.5:
					pix[y*uw+x] = 0x21 // dark outline from the terrain band
				default:
					pix[y*uw+x] = uint8(8 + (y/2)%8) // team-color stripes
				}
			}
		}
		frames[fi] = grp.FrameImage{W: uw, H: uh, Pixels: pix}
	}

	data, err := grp.Build(uw, uh, frames)
	if err != nil {
		return fmt.Errorf("unit grp: %w", err)
	}
	s.unitData = data
	if s.unitGRP, err = grp.Parse(data); err != nil {
		return fmt.Errorf("unit grp: %w", err)
	}

	circle, err := buildCircle(22)
	if err != nil {
		return fmt.Errorf("selection circle: %w", err)
	}
	s.Circles = make([]*grp.GRP, 10)
	for i := range s.Circles {
		s.Circles[i] = circle
	}
	return nil
}

// buildCircle encodes a one-frame ring whose pixels all sit below index 8
// so the selection remap tints the whole thing.
func buildCircle(size int) (*grp.GRP, error) {
	pix := make([]byte, size*size)
	outer := float64(size)/2 - 0.5
	inner := outer - 1.5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - float64(size)/2 + 0.5
			dy := (float64(y) - float64(size)/2 + 0.5) * 2 // squash to an ellipse
			d := math.Sqrt(dx*dx + dy*dy)
			if d <= outer && d >= inner {
				pix[y*size+x] = 1
			}
		}
	}
	data, err := grp.Build(size, size, []grp.FrameImage{{W: size, H: size, Pixels: pix}})
	if err != nil {
		return nil, err
	}
	return grp.Parse(data)
}

func playerColorBlob() []byte {
	base := [][8]byte{
		{0xA8, 0xA9, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF}, // red ramp
		{0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6, 0xB7}, // blue ramp
		{0xB8, 0xB9, 0xBA, 0xBB, 0xBC, 0xBD, 0xBE, 0xBF}, // teal ramp
		{0xC0, 0xC1, 0xC2, 0xC3, 0xC4, 0xC5, 0xC6, 0xC7}, // purple ramp
	}
	blob := make([]byte, 0, game.MaxPlayers*8)
	for p := 0; p < game.MaxPlayers; p++ {
		blob = append(blob, base[p%len(base)][:]...)
	}
	return blob
}
