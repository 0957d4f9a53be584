// Package grp implements the GRP sprite container and its compressed frame
// format: a per-row RLE byte stream of skip, repeat and literal runs over
// 8-bit palette indices.
package grp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize      = 6
	frameHeaderSize = 8
)

var (
	// ErrTruncated indicates the container is shorter than its declared layout.
	ErrTruncated = errors.New("grp: truncated data")
)

// Frame is a single animation pose. Its byte stream is decoded one scanline
// at a time; RowOffsets locates the start of each scanline's command stream
// within Data, since rows are not self-delimiting.
type Frame struct {
	// X, Y offset the frame within the sprite's bounding box.
	X, Y int
	W, H int

	RowOffsets []int
	Data       []byte
}

// GRP is a collection of frames sharing one bounding box.
type GRP struct {
	Width, Height int
	Frames        []Frame
}

// Parse reads a GRP container from raw bytes. The returned GRP references
// data; the caller must keep the buffer alive for as long as frames are
// drawn from it.
//
// Layout: u16 frame count, u16 width, u16 height, then per frame
// x:u8 y:u8 w:u8 h:u8 offset:u32, all little-endian. At each offset sit
// h u16 row offsets relative to the frame's offset.
func Parse(data []byte) (*GRP, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}

	count := int(binary.LittleEndian.Uint16(data[0:2]))
	g := &GRP{
		Width:  int(binary.LittleEndian.Uint16(data[2:4])),
		Height: int(binary.LittleEndian.Uint16(data[4:6])),
	}

	if len(data) < headerSize+count*frameHeaderSize {
		return nil, fmt.Errorf("frame table (%d frames): %w", count, ErrTruncated)
	}

	g.Frames = make([]Frame, count)
	for i := 0; i < count; i++ {
		h := data[headerSize+i*frameHeaderSize:]
		f := &g.Frames[i]
		f.X = int(h[0])
		f.Y = int(h[1])
		f.W = int(h[2])
		f.H = int(h[3])

		offset := int(binary.LittleEndian.Uint32(h[4:8]))
		if offset+2*f.H > len(data) {
			return nil, fmt.Errorf("frame %d row table at %#x: %w", i, offset, ErrTruncated)
		}

		f.Data = data[offset:]
		f.RowOffsets = make([]int, f.H)
		for row := 0; row < f.H; row++ {
			ro := int(binary.LittleEndian.Uint16(data[offset+2*row:]))
			if offset+ro >= len(data) && f.W > 0 {
				return nil, fmt.Errorf("frame %d row %d at %#x: %w", i, row, offset+ro, ErrTruncated)
			}
			f.RowOffsets[row] = ro
		}
	}

	return g, nil
}

// Frame returns the frame at index, clamping out-of-range indices to the
// last frame. Returns nil for an empty GRP.
func (g *GRP) Frame(index int) *Frame {
	if len(g.Frames) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(g.Frames) {
		index = len(g.Frames) - 1
	}
	return &g.Frames[index]
}
