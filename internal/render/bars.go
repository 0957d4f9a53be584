package render

// Bar palette indices. The demo palettes reserve this band for UI colors;
// real tileset palettes carry usable colors at the same slots.
const (
	colorBarBlack = 0x01
	colorBarGrid  = 0x02
	colorShield   = 0x03

	barVOffset = 6 // rows between the sprite center line and the HP bar

	hpBarRows     = 5
	shieldBarRows = 2
)

// Three shades per HP bucket, used for rows 0/4, 1/3 and 2.
var (
	hpShadesGreen  = [3]uint8{0x70, 0x71, 0x72}
	hpShadesYellow = [3]uint8{0x74, 0x75, 0x76}
	hpShadesRed    = [3]uint8{0x78, 0x79, 0x7A}

	energyShades = [3]uint8{0x7C, 0x7D, 0x7E}
)

// barDisplayWidth rounds a sprite type's configured bar width down to the
// nearest value congruent to 1 mod 3, with a floor of 19 pixels.
func barDisplayWidth(configured int) int {
	w := configured - (configured-1)%3
	if w < 19 {
		w = 19
	}
	return w
}

// barFillWidth quantizes a percentage fill of a width-w bar: integer
// percent*w/100, clamped up to 3, then rounded to the nearest multiple of
// 3 (remainder <= 1 rounds down) and capped at w.
func barFillWidth(percent, w int) int {
	r := percent * w / 100
	if r < 3 {
		return 3
	}
	if rem := r % 3; rem <= 1 {
		r -= rem
	} else {
		r += 3 - rem
	}
	if r > w {
		r = w
	}
	return r
}

func percentOf(value, max int) int {
	if max <= 0 {
		return 0
	}
	return value * 100 / max
}

// drawBars draws HP, shield and energy bars for every selected sprite with
// a configured bar width that is not invincible.
func (r *Renderer) drawBars() {
	for i := range r.sprites {
		si := &r.sprites[i]
		if !si.selected || si.barWidth <= 0 || si.invincible {
			continue
		}
		r.drawSpriteBars(si)
	}
}

func (r *Renderer) drawSpriteBars(si *spriteInfo) {
	w := barDisplayWidth(si.barWidth)
	x0 := si.centerX - w/2
	y0 := si.centerY + si.circleVPos + barVOffset

	hpPct := percentOf(si.hp, si.maxHP)
	fill := barFillWidth(hpPct, w)

	shades := &hpShadesRed
	switch {
	case hpPct >= 66:
		shades = &hpShadesGreen
	case hpPct >= 33:
		shades = &hpShadesYellow
	}

	// Shield rows sit directly above the HP bar.
	if si.maxShields > 0 {
		shieldFill := barFillWidth(percentOf(si.shields, si.maxShields), w)
		for row := 0; row < shieldBarRows; row++ {
			y := y0 - shieldBarRows + row
			r.barRow(x0, y, shieldFill, colorShield)
			r.barRowFrom(x0, y, shieldFill, w, colorBarBlack)
		}
	}

	rowShade := [hpBarRows]int{0, 1, 2, 1, 0}
	for row := 0; row < hpBarRows; row++ {
		y := y0 + row
		r.barRow(x0, y, fill, shades[rowShade[row]])
		r.barRowFrom(x0, y, fill, w, colorBarBlack)
	}

	// Grid ticks every 3 pixels along the HP bar's top and bottom edges.
	for x := 0; x < w; x += 3 {
		r.setPixel(x0+x, y0, colorBarGrid)
		r.setPixel(x0+x, y0+hpBarRows-1, colorBarGrid)
	}

	if si.maxEnergy > 0 {
		energyFill := barFillWidth(percentOf(si.energy, si.maxEnergy), w)
		ey := y0 + hpBarRows + 1
		for row := 0; row < hpBarRows; row++ {
			y := ey + row
			r.barRow(x0, y, energyFill, energyShades[rowShade[row]])
			r.barRowFrom(x0, y, energyFill, w, colorBarBlack)
		}
		for x := 0; x < w; x += 3 {
			r.setPixel(x0+x, ey, colorBarGrid)
			r.setPixel(x0+x, ey+hpBarRows-1, colorBarGrid)
		}
	}
}

// barRow fills [x0, x0+n) on row y, clipping each pixel to the
// framebuffer; off-screen pixels are skipped, never wrapped.
func (r *Renderer) barRow(x0, y, n int, color uint8) {
	if y < 0 || y >= r.height {
		return
	}
	if x0 < 0 {
		n += x0
		x0 = 0
	}
	if x0+n > r.width {
		n = r.width - x0
	}
	base := y * r.width
	for i := 0; i < n; i++ {
		r.fb[base+x0+i] = color
	}
}

// barRowFrom fills the remainder [x0+from, x0+to) of a bar row.
func (r *Renderer) barRowFrom(x0, y, from, to int, color uint8) {
	if to > from {
		r.barRow(x0+from, y, to-from, color)
	}
}

func (r *Renderer) setPixel(x, y int, color uint8) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.fb[y*r.width+x] = color
}
