// Package tileset decodes terrain graphics tables: 8x8 tile bitmaps with
// precomputed horizontal flips, 4x4 megatile reference tables and 256-entry
// RGBA palettes, one set per tileset.
package tileset

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dkyazzentwatwa/sc-ios/internal/logging"
)

const (
	// TileSize is the edge of one tile bitmap in pixels.
	TileSize = 8
	// MegatileSize is the edge of one megatile in pixels.
	MegatileSize = 32
	// MegatileCells is the number of tile bitmaps referenced by a megatile.
	MegatileCells = 16
	// PaletteEntries is the number of colors in a tileset palette.
	PaletteEntries = 256
	// NumTilesets is the number of tileset slots (indices 0-7).
	NumTilesets = 8

	graphicRecordSize  = TileSize * TileSize
	megatileRecordSize = MegatileCells * 2
	paletteBytes       = PaletteEntries * 4
)

// Names lists the conventional tileset names by index.
var Names = [NumTilesets]string{
	"badlands", "platform", "install", "ashworld",
	"jungle", "desert", "ice", "twilight",
}

var (
	ErrEmptyTable  = errors.New("tileset: empty table")
	ErrRecordSize  = errors.New("tileset: table length not a record multiple")
	ErrShortTable  = errors.New("tileset: table shorter than declared")
	ErrBadTileset  = errors.New("tileset: index out of range")
	ErrNotLoaded   = errors.New("tileset: not loaded")
	errPaletteSize = errors.New("tileset: palette shorter than 1024 bytes")
)

// Graphic is one 8x8 tile bitmap stored as eight 8-byte rows of palette
// indices, plus the horizontally mirrored copy used by odd megatile refs.
type Graphic struct {
	Rows    [TileSize][TileSize]uint8
	Flipped [TileSize][TileSize]uint8
}

// Megatile references 16 tile bitmaps in a 4x4 grid. A reference is
// bitmapIndex*2 + flipFlag.
type Megatile struct {
	Refs [MegatileCells]uint16
}

// Cell resolves reference i into a bitmap index and flip flag.
func (m *Megatile) Cell(i int) (graphic int, flipped bool) {
	ref := m.Refs[i]
	return int(ref >> 1), ref&1 != 0
}

// Tileset holds one tileset's decoded tables. Immutable once loaded.
type Tileset struct {
	Graphics  []Graphic
	Megatiles []Megatile
	Palette   [paletteBytes]uint8
}

// Load decodes the three raw tables for one tileset. The palette is stored
// RGBA with entry 0 forced transparent and every other entry opaque.
func Load(graphics, megatiles, palette []byte) (*Tileset, error) {
	if len(graphics) == 0 || len(megatiles) == 0 {
		return nil, ErrEmptyTable
	}
	if len(graphics)%graphicRecordSize != 0 {
		return nil, fmt.Errorf("tile graphics (%d bytes): %w", len(graphics), ErrRecordSize)
	}
	if len(megatiles)%megatileRecordSize != 0 {
		return nil, fmt.Errorf("megatiles (%d bytes): %w", len(megatiles), ErrRecordSize)
	}
	if len(palette) < paletteBytes {
		return nil, errPaletteSize
	}

	ts := &Tileset{
		Graphics:  make([]Graphic, len(graphics)/graphicRecordSize),
		Megatiles: make([]Megatile, len(megatiles)/megatileRecordSize),
	}

	for i := range ts.Graphics {
		rec := graphics[i*graphicRecordSize:]
		g := &ts.Graphics[i]
		for y := 0; y < TileSize; y++ {
			for x := 0; x < TileSize; x++ {
				v := rec[y*TileSize+x]
				g.Rows[y][x] = v
				g.Flipped[y][TileSize-1-x] = v
			}
		}
	}

	for i := range ts.Megatiles {
		rec := megatiles[i*megatileRecordSize:]
		for c := 0; c < MegatileCells; c++ {
			ts.Megatiles[i].Refs[c] = binary.LittleEndian.Uint16(rec[c*2:])
		}
	}

	copy(ts.Palette[:], palette[:paletteBytes])
	for i := 0; i < PaletteEntries; i++ {
		ts.Palette[i*4+3] = 255
	}
	ts.Palette[3] = 0 // entry 0 is transparent

	return ts, nil
}

// BlitMegatile expands megatile index into dst at (x, y), one 8x8 cell at a
// time with per-cell flips, clipped to the clipW-by-clipH destination.
// Out-of-range megatile indices draw nothing.
func (ts *Tileset) BlitMegatile(index int, dst []byte, pitch, x, y, clipW, clipH int) {
	if index < 0 || index >= len(ts.Megatiles) {
		return
	}
	if x+MegatileSize <= 0 || x >= clipW || y+MegatileSize <= 0 || y >= clipH {
		return
	}

	mt := &ts.Megatiles[index]
	for c := 0; c < MegatileCells; c++ {
		gi, flipped := mt.Cell(c)
		if gi >= len(ts.Graphics) {
			continue
		}
		g := &ts.Graphics[gi]
		cx := x + (c%4)*TileSize
		cy := y + (c/4)*TileSize

		rows := &g.Rows
		if flipped {
			rows = &g.Flipped
		}
		for ry := 0; ry < TileSize; ry++ {
			py := cy + ry
			if py < 0 || py >= clipH {
				continue
			}
			base := py * pitch
			for rx := 0; rx < TileSize; rx++ {
				px := cx + rx
				if px < 0 || px >= clipW {
					continue
				}
				dst[base+px] = rows[ry][rx]
			}
		}
	}
}

// Table holds the eight tileset slots. Loading is best-effort per slot:
// a failed tileset stays unloaded and rendering carries on with the rest.
type Table struct {
	slots [NumTilesets]*Tileset
	log   *logging.Logger
}

// Source supplies the raw byte tables for one tileset. Resolving archives
// and decompressing blobs is the asset system's job, not ours.
type Source interface {
	TilesetData(index int) (graphics, megatiles, palette []byte, err error)
}

// NewTable returns an empty tileset table.
func NewTable() *Table {
	return &Table{log: logging.Subsystem("tileset")}
}

// Load decodes one tileset slot from raw tables.
func (t *Table) Load(index int, graphics, megatiles, palette []byte) error {
	if index < 0 || index >= NumTilesets {
		return fmt.Errorf("%w: %d", ErrBadTileset, index)
	}
	ts, err := Load(graphics, megatiles, palette)
	if err != nil {
		t.slots[index] = nil
		return fmt.Errorf("load tileset %d (%s): %w", index, Names[index], err)
	}
	t.slots[index] = ts
	t.log.Debug("loaded tileset %d (%s): %d graphics, %d megatiles",
		index, Names[index], len(ts.Graphics), len(ts.Megatiles))
	return nil
}

// LoadAll loads every slot from src, logging failures instead of aborting.
// Returns the number of tilesets that loaded.
func (t *Table) LoadAll(src Source) int {
	loaded := 0
	for i := 0; i < NumTilesets; i++ {
		graphics, megatiles, palette, err := src.TilesetData(i)
		if err == nil {
			err = t.Load(i, graphics, megatiles, palette)
		}
		if err != nil {
			t.log.Warn("tileset %d (%s) unavailable: %v", i, Names[i], err)
			continue
		}
		loaded++
	}
	return loaded
}

// Get returns the tileset at index, or an error if the index is out of
// range or that tileset failed to load.
func (t *Table) Get(index int) (*Tileset, error) {
	if index < 0 || index >= NumTilesets {
		return nil, fmt.Errorf("%w: %d", ErrBadTileset, index)
	}
	if t.slots[index] == nil {
		return nil, fmt.Errorf("tileset %d (%s): %w", index, Names[index], ErrNotLoaded)
	}
	return t.slots[index], nil
}

// AnyLoaded reports whether at least one tileset is usable.
func (t *Table) AnyLoaded() bool {
	for _, ts := range t.slots {
		if ts != nil {
			return true
		}
	}
	return false
}
