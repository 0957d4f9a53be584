// Package game defines the read-only view of simulation state the render
// core consumes. The simulation itself (unit AI, pathing, combat) lives
// behind this boundary; the renderer reads one Snapshot per tick and must
// not hold references into it across ticks.
package game

import "github.com/dkyazzentwatwa/sc-ios/internal/grp"

// Image modifiers. Anything else draws as normal.
const (
	ModifierNormal = 0
	ModifierShadow = 10
)

// Sprite flag bits.
const (
	FlagHidden uint32 = 1 << iota
	FlagTurret
)

// MaxPlayers is the number of player slots with team colors.
const MaxPlayers = 12

// Point is a world- or screen-space position in pixels.
type Point struct {
	X, Y int
}

// Image is one visual layer of a sprite. The renderer resolves FrameIndex
// against GRP for the duration of a single draw call only.
type Image struct {
	GRP        *grp.GRP
	FrameIndex int
	Offset     Point
	Flipped    bool
	Modifier   int
}

// Sprite is a world-space drawable entity. Images are declared topmost
// first; the renderer draws them in reverse declaration order.
type Sprite struct {
	Position  Point
	Owner     int
	Elevation int
	Flags     uint32
	Images    []Image

	// SelectionCircle indexes the circle size descriptor, -1 for none;
	// SelectionCircleVPos offsets the circle below the sprite center.
	SelectionCircle     int
	SelectionCircleVPos int

	// HealthBarWidth is the configured bar width in pixels, 0 for no bar.
	HealthBarWidth int
	HP, MaxHP      int
	Shields        int
	MaxShields     int
	Energy         int
	MaxEnergy      int
	Invincible     bool
}

// Hidden reports whether the sprite is excluded from rendering.
func (s *Sprite) Hidden() bool { return s.Flags&FlagHidden != 0 }

// Turret reports whether the sprite is a turret sub-sprite, drawn
// fractionally above its parent at equal elevation.
func (s *Sprite) Turret() bool { return s.Flags&FlagTurret != 0 }

// Snapshot is the per-tick world state handed to the renderer. Selected is
// aligned 1:1 with Sprites; a nil mask means nothing is selected.
type Snapshot struct {
	Sprites  []Sprite
	Selected []bool
}

// IsSelected reports whether sprite i is in the current selection.
func (s *Snapshot) IsSelected(i int) bool {
	return s.Selected != nil && i < len(s.Selected) && s.Selected[i]
}
