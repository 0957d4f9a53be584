package demo

// Synthetic tileset tables: enough variety to make terrain, shadows, team
// colors and the UI bars all visibly distinct without any game data.

const (
	synthGraphicCount  = 64
	synthMegatileCount = 96
)

// synthGraphics generates 64-byte tile records over the terrain palette
// band (0x20-0x6F) with deterministic texture.
func synthGraphics() []byte {
	out := make([]byte, synthGraphicCount*64)
	for g := 0; g < synthGraphicCount; g++ {
		base := 0x20 + (g%20)*2
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				v := base + ((x*3+y*5+g)%7)/3
				if v > 0x6F {
					v = 0x6F
				}
				out[g*64+y*8+x] = byte(v)
			}
		}
	}
	return out
}

// synthMegatiles packs 16 tile references per record with an LCG scatter;
// odd references exercise the mirrored tile path.
func synthMegatiles() []byte {
	out := make([]byte, synthMegatileCount*32)
	seed := uint32(0x9E3779B9)
	for m := 0; m < synthMegatileCount; m++ {
		for c := 0; c < 16; c++ {
			seed = seed*1664525 + 1013904223
			ref := uint16(seed>>16) % (synthGraphicCount * 2)
			out[m*32+c*2] = byte(ref)
			out[m*32+c*2+1] = byte(ref >> 8)
		}
	}
	return out
}

// synthPalette lays out the color bands the renderer's constants assume:
// UI colors low, test pattern at 0x10, terrain at 0x20-0x6F, bar shades at
// 0x70-0x7E, team ramps at 0xA8-0xC7, grayscale elsewhere.
func synthPalette() []byte {
	pal := make([]byte, 256*4)
	set := func(i int, r, g, b byte) {
		pal[i*4] = r
		pal[i*4+1] = g
		pal[i*4+2] = b
		pal[i*4+3] = 255
	}

	for i := 1; i < 256; i++ {
		set(i, byte(i), byte(i), byte(i))
	}
	set(0, 0, 0, 0)
	pal[3] = 0 // transparent

	set(1, 8, 8, 8)       // bar black
	set(2, 160, 160, 160) // bar grid
	set(3, 60, 100, 255)  // shield blue

	// Default team-color slots 8-15: white-to-red ramp.
	for i := 0; i < 8; i++ {
		set(8+i, 255, byte(255-i*30), byte(255-i*30))
	}

	// Test pattern pairs and marker.
	set(0x10, 70, 110, 70)
	set(0x12, 50, 90, 50)
	set(0x14, 60, 60, 80)
	set(0x16, 40, 40, 60)
	set(0x18, 255, 240, 80)

	// Terrain band: green-brown ramp.
	for i := 0x20; i <= 0x6F; i++ {
		t := i - 0x20
		set(i, byte(50+t*2), byte(90+t), byte(40+t))
	}

	// HP bar shades: green, yellow, red triples then energy purple.
	set(0x70, 44, 228, 68)
	set(0x71, 32, 180, 52)
	set(0x72, 20, 132, 36)
	set(0x74, 228, 228, 60)
	set(0x75, 180, 180, 44)
	set(0x76, 132, 132, 28)
	set(0x78, 228, 60, 44)
	set(0x79, 180, 44, 32)
	set(0x7A, 132, 28, 20)
	set(0x7C, 200, 96, 255)
	set(0x7D, 160, 72, 220)
	set(0x7E, 120, 48, 180)

	// Team ramps referenced by the demo player-color blob.
	ramp := func(start int, r, g, b int) {
		for i := 0; i < 8; i++ {
			f := 255 - i*22
			set(start+i, byte(r*f/255), byte(g*f/255), byte(b*f/255))
		}
	}
	ramp(0xA8, 244, 24, 24)
	ramp(0xB0, 48, 96, 244)
	ramp(0xB8, 44, 200, 170)
	ramp(0xC0, 170, 80, 200)

	return pal
}
