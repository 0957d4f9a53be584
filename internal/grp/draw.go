package grp

// Run command encoding, per byte v of a scanline stream:
//
//	v & 0x80 != 0  skip (v & 0x7F) transparent pixels
//	v & 0x40 != 0  repeat the next data byte (v & 0x3F) times
//	otherwise      copy the next v literal data bytes (0 < v <= 0x3F)
const (
	cmdSkip    = 0x80
	cmdRepeat  = 0x40
	maskSkip   = 0x7F
	maskRepeat = 0x3F
)

// Rect is a clip rectangle in destination pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the w-by-h box at (x, y) lies entirely inside r.
func (r Rect) Contains(x, y, w, h int) bool {
	return x >= r.X && y >= r.Y && x+w <= r.X+r.W && y+h <= r.Y+r.H
}

// Draw decodes frame f into dst, a pitch-stride buffer of one byte per
// pixel, placing the frame's top-left at (x, y). Pixels falling outside
// clip are dropped; clip must itself lie within dst. Every stored pixel is
// passed through rm first.
//
// When the frame lies entirely inside the clip rectangle an unchecked fast
// path is taken; both paths produce identical pixels. The read cursor is
// not bounds-checked: frame data is trusted, having been validated by
// Parse (corrupt row streams panic rather than render garbage silently).
func Draw[R Remapper](f *Frame, flipped bool, dst []byte, pitch, x, y int, clip Rect, rm R) {
	if f == nil || f.W == 0 || f.H == 0 {
		return
	}
	// Fully off-screen frames don't touch the stream at all.
	if x+f.W <= clip.X || x >= clip.X+clip.W || y+f.H <= clip.Y || y >= clip.Y+clip.H {
		return
	}
	if clip.Contains(x, y, f.W, f.H) {
		if flipped {
			drawFast(f, dst, pitch, x, y, -1, rm)
		} else {
			drawFast(f, dst, pitch, x, y, 1, rm)
		}
		return
	}
	if flipped {
		drawClipped(f, dst, pitch, x, y, -1, clip, rm)
	} else {
		drawClipped(f, dst, pitch, x, y, 1, clip, rm)
	}
}

// drawFast decodes without per-pixel bounds tests. dir is +1 for normal
// frames and -1 for horizontally flipped ones; a flipped frame writes
// right-to-left from its right edge, and skip runs advance the cursor in
// that same direction.
func drawFast[R Remapper](f *Frame, dst []byte, pitch, x, y, dir int, rm R) {
	for row := 0; row < f.H; row++ {
		d := f.Data[f.RowOffsets[row]:]
		pos := (y+row)*pitch + x
		if dir < 0 {
			pos += f.W - 1
		}

		i := 0
		remaining := f.W
		for remaining > 0 {
			v := int(d[i])
			i++
			if v&cmdSkip != 0 {
				n := v & maskSkip
				pos += dir * n
				remaining -= n
				continue
			}
			n := v & maskRepeat
			remaining -= n
			if v&cmdRepeat != 0 {
				c := d[i]
				i++
				for ; n > 0; n-- {
					dst[pos] = rm.Remap(c, dst[pos])
					pos += dir
				}
				continue
			}
			for ; n > 0; n-- {
				c := d[i]
				i++
				dst[pos] = rm.Remap(c, dst[pos])
				pos += dir
			}
		}
	}
}

// drawClipped decodes with every write tested against the clip rectangle.
// Rows outside the clip are skipped entirely via the row offset table.
func drawClipped[R Remapper](f *Frame, dst []byte, pitch, x, y, dir int, clip Rect, rm R) {
	rowStart := 0
	if y < clip.Y {
		rowStart = clip.Y - y
	}
	rowEnd := f.H
	if y+rowEnd > clip.Y+clip.H {
		rowEnd = clip.Y + clip.H - y
	}

	for row := rowStart; row < rowEnd; row++ {
		d := f.Data[f.RowOffsets[row]:]
		rowBase := (y + row) * pitch
		sx := x
		if dir < 0 {
			sx += f.W - 1
		}

		i := 0
		remaining := f.W
		for remaining > 0 {
			v := int(d[i])
			i++
			if v&cmdSkip != 0 {
				n := v & maskSkip
				sx += dir * n
				remaining -= n
				continue
			}
			n := v & maskRepeat
			remaining -= n
			if v&cmdRepeat != 0 {
				c := d[i]
				i++
				for ; n > 0; n-- {
					if sx >= clip.X && sx < clip.X+clip.W {
						p := rowBase + sx
						dst[p] = rm.Remap(c, dst[p])
					}
					sx += dir
				}
				continue
			}
			for ; n > 0; n-- {
				c := d[i]
				i++
				if sx >= clip.X && sx < clip.X+clip.W {
					p := rowBase + sx
					dst[p] = rm.Remap(c, dst[p])
				}
				sx += dir
			}
		}
	}
}
