package grp

// Remapper transforms a decoded pixel before it is stored. It receives the
// decoded palette index and the destination's current value and returns the
// value to store. Implementations must be stateless value types so the
// generic draw paths can inline them.
type Remapper interface {
	Remap(v, old uint8) uint8
}

// NoRemap stores decoded pixels untouched.
type NoRemap struct{}

func (NoRemap) Remap(v, _ uint8) uint8 { return v }

// PlayerRemap substitutes the team-color slots 8-15 with the owning
// player's 8-color ramp and passes every other index through.
type PlayerRemap struct {
	Colors *[8]uint8
}

func (r PlayerRemap) Remap(v, _ uint8) uint8 {
	if v >= 8 && v < 16 {
		return r.Colors[v-8]
	}
	return v
}

// SelectionRemap tints selection-circle pixels: indices below 8 become the
// owner's tint byte, everything else passes through.
type SelectionRemap struct {
	Tint uint8
}

func (r SelectionRemap) Remap(v, _ uint8) uint8 {
	if v < 8 {
		return r.Tint
	}
	return v
}

// ShadowRemap darkens whatever is already in the destination and ignores
// the decoded value entirely. Indices at or below 16 are left alone so the
// darkening cannot wrap into the team-color slots.
type ShadowRemap struct{}

func (ShadowRemap) Remap(_, old uint8) uint8 {
	if old > 16 {
		return old - 16
	}
	return old
}
