package grp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeFrame renders f into its own bounding box for comparison against
// the encoder's input grid.
func decodeFrame(f *Frame) []byte {
	dest := make([]byte, f.W*f.H)
	Draw(f, false, dest, f.W, 0, 0, Rect{W: f.W, H: f.H}, NoRemap{})
	return dest
}

func TestBuild_RoundTrip(t *testing.T) {
	frames := []FrameImage{
		{X: 1, Y: 2, W: 4, H: 3, Pixels: []byte{
			0, 5, 5, 0,
			7, 7, 7, 7,
			1, 2, 3, 0,
		}},
		{W: 2, H: 2, Pixels: []byte{
			0, 0,
			0, 9,
		}},
	}

	data, err := Build(16, 16, frames)
	require.NoError(t, err)

	g, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, 16, g.Width)
	require.Equal(t, 16, g.Height)
	require.Len(t, g.Frames, 2)

	for i, src := range frames {
		f := g.Frame(i)
		require.Equal(t, src.X, f.X)
		require.Equal(t, src.Y, f.Y)
		require.Equal(t, src.W, f.W)
		require.Equal(t, src.H, f.H)
		require.Equal(t, src.Pixels, decodeFrame(f), "frame %d", i)
	}
}

func TestBuild_LongRuns(t *testing.T) {
	// One row each of transparency and a solid color, both longer than a
	// single run can carry (skip caps at 0x7F, repeat at 0x3F).
	const w = 200
	pixels := make([]byte, w*2)
	for x := 0; x < w; x++ {
		pixels[w+x] = 0x33
	}

	data, err := Build(w, 2, []FrameImage{{W: w, H: 2, Pixels: pixels}})
	require.NoError(t, err)

	g, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, pixels, decodeFrame(g.Frame(0)))
}

func TestAppendRow_Commands(t *testing.T) {
	tests := []struct {
		name string
		row  []byte
		want []byte
	}{
		{"all transparent", []byte{0, 0, 0}, []byte{0x83}},
		{"solid", []byte{4, 4, 4, 4}, []byte{0x44, 4}},
		{"literal", []byte{1, 2, 3}, []byte{0x03, 1, 2, 3}},
		{
			"mixed",
			[]byte{0, 0, 7, 7, 7, 1, 2},
			[]byte{0x82, 0x43, 7, 0x02, 1, 2},
		},
		{
			// A pair mid-literal is cheaper as a repeat run.
			"literal breaks before pair",
			[]byte{1, 2, 9, 9},
			[]byte{0x02, 1, 2, 0x42, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, appendRow(nil, tt.row))
		})
	}
}

func TestBuild_Validation(t *testing.T) {
	_, err := Build(0x10000, 16, nil)
	require.Error(t, err)

	_, err = Build(16, 16, []FrameImage{{W: 300, H: 1, Pixels: make([]byte, 300)}})
	require.Error(t, err)

	_, err = Build(16, 16, []FrameImage{{W: 2, H: 2, Pixels: make([]byte, 3)}})
	require.Error(t, err)
}

func TestBuild_FlippedRoundTrip(t *testing.T) {
	src := []byte{
		1, 2, 0,
		0, 3, 4,
	}
	data, err := Build(3, 2, []FrameImage{{W: 3, H: 2, Pixels: src}})
	require.NoError(t, err)

	g, err := Parse(data)
	require.NoError(t, err)

	dest := make([]byte, 3*2)
	Draw(g.Frame(0), true, dest, 3, 0, 0, Rect{W: 3, H: 2}, NoRemap{})
	require.Equal(t, []byte{
		0, 2, 1,
		4, 3, 0,
	}, dest)
}
