package grp

import (
	"encoding/binary"
	"fmt"
)

// FrameImage is an uncompressed frame handed to the encoder: a row-major
// grid of palette indices where index 0 means transparent.
type FrameImage struct {
	X, Y   int
	W, H   int
	Pixels []byte
}

// appendRow appends one scanline's command stream for row to dst.
// Greedy: transparent pixels become skip runs, repeats of length two or
// more become repeat runs, everything else is gathered into literal runs.
func appendRow(dst []byte, row []byte) []byte {
	i := 0
	for i < len(row) {
		// Skip run.
		if row[i] == 0 {
			n := 1
			for i+n < len(row) && row[i+n] == 0 {
				n++
			}
			i += n
			for n > maskSkip {
				dst = append(dst, cmdSkip|maskSkip)
				n -= maskSkip
			}
			dst = append(dst, cmdSkip|byte(n))
			continue
		}

		// Repeat run.
		n := 1
		for i+n < len(row) && row[i+n] == row[i] {
			n++
		}
		if n >= 2 {
			c := row[i]
			i += n
			for n > maskRepeat {
				dst = append(dst, cmdRepeat|maskRepeat, c)
				n -= maskRepeat
			}
			dst = append(dst, cmdRepeat|byte(n), c)
			continue
		}

		// Literal run: up to the next transparent pixel or pair of equal
		// pixels, capped at the 6-bit run length.
		start := i
		for i < len(row) && row[i] != 0 && i-start < maskRepeat {
			if i+1 < len(row) && row[i+1] == row[i] {
				break
			}
			i++
		}
		dst = append(dst, byte(i-start))
		dst = append(dst, row[start:i]...)
	}
	return dst
}

// Build serializes frames into a GRP container with the given bounding box.
// The result round-trips through Parse and Draw back to the source grids.
func Build(width, height int, frames []FrameImage) ([]byte, error) {
	if width > 0xFFFF || height > 0xFFFF || len(frames) > 0xFFFF {
		return nil, fmt.Errorf("grp: container bounds out of range (%dx%d, %d frames)", width, height, len(frames))
	}

	out := make([]byte, headerSize+len(frames)*frameHeaderSize)
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(frames)))
	binary.LittleEndian.PutUint16(out[2:4], uint16(width))
	binary.LittleEndian.PutUint16(out[4:6], uint16(height))

	for i, f := range frames {
		if f.X > 0xFF || f.Y > 0xFF || f.W > 0xFF || f.H > 0xFF || f.X < 0 || f.Y < 0 {
			return nil, fmt.Errorf("grp: frame %d bounds out of range (%d,%d %dx%d)", i, f.X, f.Y, f.W, f.H)
		}
		if len(f.Pixels) != f.W*f.H {
			return nil, fmt.Errorf("grp: frame %d pixel count %d, want %d", i, len(f.Pixels), f.W*f.H)
		}

		offset := len(out)
		if offset > 0xFFFFFFFF {
			return nil, fmt.Errorf("grp: frame %d offset overflow", i)
		}

		h := out[headerSize+i*frameHeaderSize:]
		h[0] = byte(f.X)
		h[1] = byte(f.Y)
		h[2] = byte(f.W)
		h[3] = byte(f.H)
		binary.LittleEndian.PutUint32(h[4:8], uint32(offset))

		// Row offset table, backpatched as each row stream lands.
		rowTable := len(out)
		out = append(out, make([]byte, 2*f.H)...)
		for row := 0; row < f.H; row++ {
			ro := len(out) - offset
			if ro > 0xFFFF {
				return nil, fmt.Errorf("grp: frame %d row %d offset overflow", i, row)
			}
			binary.LittleEndian.PutUint16(out[rowTable+2*row:], uint16(ro))
			out = appendRow(out, f.Pixels[row*f.W:(row+1)*f.W])
		}
	}

	return out, nil
}
