package tileset

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads pre-extracted flat tables from a directory:
// <name>.vr4 (tile graphics), <name>.vx4 (megatiles), <name>.wpe
// (palette). Archive resolution and decompression stay upstream; this
// only picks raw files off disk.
type DirSource struct {
	Dir string
}

func (d DirSource) TilesetData(index int) (graphics, megatiles, palette []byte, err error) {
	if index < 0 || index >= NumTilesets {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrBadTileset, index)
	}
	name := Names[index]

	if graphics, err = os.ReadFile(filepath.Join(d.Dir, name+".vr4")); err != nil {
		return nil, nil, nil, fmt.Errorf("tile graphics: %w", err)
	}
	if megatiles, err = os.ReadFile(filepath.Join(d.Dir, name+".vx4")); err != nil {
		return nil, nil, nil, fmt.Errorf("megatiles: %w", err)
	}
	if palette, err = os.ReadFile(filepath.Join(d.Dir, name+".wpe")); err != nil {
		return nil, nil, nil, fmt.Errorf("palette: %w", err)
	}
	return graphics, megatiles, palette, nil
}
