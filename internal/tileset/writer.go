package tileset

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// BuildResult is a tileset built from an arbitrary image: the three raw
// tables the loader accepts plus a megatile map covering the source image.
type BuildResult struct {
	Graphics  []byte
	Megatiles []byte
	Palette   []byte

	// Map holds one megatile index per 32x32 cell of the source image,
	// row-major, ready to feed a renderer's tile grid.
	Map        []uint16
	MapW, MapH int
}

// BuildFromImage quantizes img to at most 255 colors (entry 0 stays the
// transparent slot), slices it into 8x8 tile bitmaps deduplicated under
// horizontal mirroring, and packs 4x4 arrangements into megatiles.
func BuildFromImage(img image.Image) (*BuildResult, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("tileset: empty image")
	}

	pm, _ := img.(*image.Paletted)
	if pm == nil || len(pm.Palette) > PaletteEntries-1 {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, PaletteEntries-1), img))
		draw.Draw(pm, b, img, b.Min, draw.Src)
	}
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	// Pad to whole megatiles; the padding cells index the transparent slot.
	mapW := (pm.Rect.Dx() + MegatileSize - 1) / MegatileSize
	mapH := (pm.Rect.Dy() + MegatileSize - 1) / MegatileSize

	res := &BuildResult{
		MapW: mapW,
		MapH: mapH,
		Map:  make([]uint16, 0, mapW*mapH),
	}

	graphicIndex := make(map[[graphicRecordSize]byte]int)
	megatileIndex := make(map[[megatileRecordSize]byte]int)

	for my := 0; my < mapH; my++ {
		for mx := 0; mx < mapW; mx++ {
			var rec [megatileRecordSize]byte
			for c := 0; c < MegatileCells; c++ {
				cell := readCell(pm, mx*MegatileSize+(c%4)*TileSize, my*MegatileSize+(c/4)*TileSize)
				ref := internGraphic(graphicIndex, &res.Graphics, cell)
				binary.LittleEndian.PutUint16(rec[c*2:], ref)
			}

			idx, ok := megatileIndex[rec]
			if !ok {
				idx = len(res.Megatiles) / megatileRecordSize
				megatileIndex[rec] = idx
				res.Megatiles = append(res.Megatiles, rec[:]...)
			}
			if idx > 0x7FFF {
				return nil, errors.New("tileset: too many distinct megatiles")
			}
			res.Map = append(res.Map, uint16(idx))
		}
	}

	res.Palette = make([]byte, paletteBytes)
	for i, c := range pm.Palette {
		r, g, bl, _ := c.RGBA()
		// Slot 0 is reserved transparent; palette colors start at 1.
		o := (i + 1) * 4
		res.Palette[o] = byte(r >> 8)
		res.Palette[o+1] = byte(g >> 8)
		res.Palette[o+2] = byte(bl >> 8)
		res.Palette[o+3] = 255
	}

	return res, nil
}

// readCell copies one 8x8 cell of pm, shifting indices up by one to keep
// slot 0 transparent. Out-of-bounds pixels read as 0.
func readCell(pm *image.Paletted, x, y int) [graphicRecordSize]byte {
	var cell [graphicRecordSize]byte
	for ry := 0; ry < TileSize; ry++ {
		if y+ry >= pm.Rect.Max.Y {
			break
		}
		for rx := 0; rx < TileSize; rx++ {
			if x+rx >= pm.Rect.Max.X {
				break
			}
			cell[ry*TileSize+rx] = pm.ColorIndexAt(x+rx, y+ry) + 1
		}
	}
	return cell
}

// internGraphic returns the packed reference for cell, reusing an existing
// bitmap when cell matches it directly (even ref) or mirrored (odd ref).
func internGraphic(index map[[graphicRecordSize]byte]int, table *[]byte, cell [graphicRecordSize]byte) uint16 {
	if gi, ok := index[cell]; ok {
		return uint16(gi * 2)
	}
	if gi, ok := index[mirrorCell(cell)]; ok {
		return uint16(gi*2 + 1)
	}

	gi := len(*table) / graphicRecordSize
	index[cell] = gi
	*table = append(*table, cell[:]...)
	return uint16(gi * 2)
}

func mirrorCell(cell [graphicRecordSize]byte) [graphicRecordSize]byte {
	var m [graphicRecordSize]byte
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			m[y*TileSize+TileSize-1-x] = cell[y*TileSize+x]
		}
	}
	return m
}
