package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/image/draw"

	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
)

func grpInfo(c *cli.Context) error {
	path, err := requireArg(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return exit(err)
	}
	g, err := grp.Parse(data)
	if err != nil {
		return exit(err)
	}

	fmt.Printf("%s: %d frames, bounding box %dx%d\n", filepath.Base(path), len(g.Frames), g.Width, g.Height)
	for i := range g.Frames {
		f := &g.Frames[i]
		fmt.Printf("  frame %3d: %3dx%-3d at (%d,%d)\n", i, f.W, f.H, f.X, f.Y)
	}
	return nil
}

func grpExport(c *cli.Context) error {
	path, err := requireArg(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return exit(err)
	}
	g, err := grp.Parse(data)
	if err != nil {
		return exit(err)
	}

	palette, err := loadPalette(c.String("palette"))
	if err != nil {
		return exit(err)
	}

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return exit(err)
	}

	base := filepath.Base(path)
	for i := range g.Frames {
		frame := &g.Frames[i]

		// Decode into the container's bounding box so frames stay aligned.
		indexed := make([]byte, g.Width*g.Height)
		clip := grp.Rect{X: 0, Y: 0, W: g.Width, H: g.Height}
		grp.Draw(frame, false, indexed, g.Width, frame.X, frame.Y, clip, grp.NoRemap{})

		img := indexedToRGBA(indexed, g.Width, g.Height, palette)
		if scale := c.Int("scale"); scale > 1 {
			img = scaleRGBA(img, scale)
		}

		name := filepath.Join(outDir, fmt.Sprintf("%s.%03d.png", base, i))
		if err := writePNG(name, img); err != nil {
			return exit(err)
		}
	}

	fmt.Printf("wrote %d frames to %s\n", len(g.Frames), outDir)
	return nil
}

func grpBuild(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	var (
		frames []grp.FrameImage
		maxW   int
		maxH   int
	)
	for _, path := range c.Args().Slice() {
		pm, err := loadPaletted(path)
		if err != nil {
			return exit(err)
		}
		w, h := pm.Rect.Dx(), pm.Rect.Dy()
		if w > maxW {
			maxW = w
		}
		if h > maxH {
			maxH = h
		}
		pixels := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(pixels[y*w:(y+1)*w], pm.Pix[y*pm.Stride:y*pm.Stride+w])
		}
		frames = append(frames, grp.FrameImage{W: w, H: h, Pixels: pixels})
	}

	// Center each frame in the shared bounding box.
	for i := range frames {
		frames[i].X = (maxW - frames[i].W) / 2
		frames[i].Y = (maxH - frames[i].H) / 2
	}

	data, err := grp.Build(maxW, maxH, frames)
	if err != nil {
		return exit(err)
	}
	if err := os.WriteFile(c.String("out"), data, 0o644); err != nil {
		return exit(err)
	}

	fmt.Printf("wrote %s: %d frames, %d bytes\n", c.String("out"), len(frames), len(data))
	return nil
}

// loadPalette reads a 256-entry RGBX palette file.
func loadPalette(path string) ([]byte, error) {
	pal, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	if len(pal) < 256*4 {
		return nil, fmt.Errorf("palette %s: %d bytes, want at least %d", path, len(pal), 256*4)
	}
	return pal, nil
}

func loadPaletted(path string) (*image.Paletted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pm, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%s: not a paletted PNG", path)
	}
	return pm, nil
}

func indexedToRGBA(indexed []byte, w, h int, palette []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, idx := range indexed {
		o := int(idx) * 4
		a := uint8(255)
		if idx == 0 {
			a = 0
		}
		img.SetRGBA(i%w, i/w, color.RGBA{palette[o], palette[o+1], palette[o+2], a})
	}
	return img
}

func scaleRGBA(src *image.RGBA, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
