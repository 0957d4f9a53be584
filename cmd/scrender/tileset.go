package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dkyazzentwatwa/sc-ios/internal/tileset"
)

func tilesetImport(c *cli.Context) error {
	path, err := requireArg(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return exit(err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return exit(fmt.Errorf("%s: %w", path, err))
	}

	res, err := tileset.BuildFromImage(img)
	if err != nil {
		return exit(err)
	}

	base := c.String("out")
	outputs := map[string][]byte{
		base + ".vr4": res.Graphics,
		base + ".vx4": res.Megatiles,
		base + ".wpe": res.Palette,
		base + ".map": encodeMap(res),
	}
	for name, data := range outputs {
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return exit(err)
		}
	}

	fmt.Printf("%s: %d graphics, %d megatiles, %dx%d map\n",
		base, len(res.Graphics)/64, len(res.Megatiles)/32, res.MapW, res.MapH)
	return nil
}

// encodeMap serializes the megatile grid: u16 width, u16 height, then
// width*height u16 indices, all little-endian.
func encodeMap(res *tileset.BuildResult) []byte {
	out := make([]byte, 4+2*len(res.Map))
	binary.LittleEndian.PutUint16(out[0:2], uint16(res.MapW))
	binary.LittleEndian.PutUint16(out[2:4], uint16(res.MapH))
	for i, v := range res.Map {
		binary.LittleEndian.PutUint16(out[4+2*i:], v)
	}
	return out
}

func tilesetExport(c *cli.Context) error {
	base, err := requireArg(c)
	if err != nil {
		return err
	}

	graphics, err := os.ReadFile(base + ".vr4")
	if err != nil {
		return exit(err)
	}
	megatiles, err := os.ReadFile(base + ".vx4")
	if err != nil {
		return exit(err)
	}
	palette, err := os.ReadFile(base + ".wpe")
	if err != nil {
		return exit(err)
	}

	ts, err := tileset.Load(graphics, megatiles, palette)
	if err != nil {
		return exit(err)
	}

	// Contact sheet: 16 megatiles per row.
	const perRow = 16
	rows := (len(ts.Megatiles) + perRow - 1) / perRow
	sheetW := perRow * tileset.MegatileSize
	sheetH := rows * tileset.MegatileSize

	indexed := make([]byte, sheetW*sheetH)
	for i := range ts.Megatiles {
		x := (i % perRow) * tileset.MegatileSize
		y := (i / perRow) * tileset.MegatileSize
		ts.BlitMegatile(i, indexed, sheetW, x, y, sheetW, sheetH)
	}

	img := indexedToRGBA(indexed, sheetW, sheetH, ts.Palette[:])
	var out image.Image = img
	if scale := c.Int("scale"); scale > 1 {
		out = scaleRGBA(img, scale)
	}
	if err := writePNG(c.String("out"), out); err != nil {
		return exit(err)
	}

	fmt.Printf("wrote %s: %d megatiles\n", c.String("out"), len(ts.Megatiles))
	return nil
}
