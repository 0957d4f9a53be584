package render

import (
	"sort"

	"github.com/dkyazzentwatwa/sc-ios/internal/game"
	"github.com/dkyazzentwatwa/sc-ios/internal/grp"
)

// spriteInfo is the per-tick descriptor copied out of the engine snapshot.
// Draw items refer to it by index; no snapshot pointers survive the tick.
type spriteInfo struct {
	centerX, centerY int
	owner            int
	selected         bool

	circle      int
	circleVPos  int
	barWidth    int
	hp, maxHP   int
	shields     int
	maxShields  int
	energy      int
	maxEnergy   int
	invincible  bool
	circleDrawn bool
}

// drawItem is the flattened unit of work the frame codec consumes: one
// image of one sprite with precomputed screen coordinates.
type drawItem struct {
	x, y     int
	frame    *grp.Frame
	flipped  bool
	modifier int
	sprite   int
}

// depthKey computes the sprite draw-order key: elevation dominates, low
// elevations additionally order by vertical position so sprites lower on
// screen draw on top, and turret sub-sprites draw fractionally above their
// parents.
func depthKey(s *game.Sprite) uint32 {
	key := uint32(s.Elevation) << 14
	if s.Elevation <= 4 {
		key |= uint32(s.Position.Y&0x1FFF) << 1
	}
	if s.Turret() {
		key |= 1
	}
	return key
}

// collect gathers visible sprites from the camera's tile rows, depth-sorts
// them and flattens their images into the draw item list.
func (r *Renderer) collect(snap *game.Snapshot) {
	r.sprites = r.sprites[:0]
	r.items = r.items[:0]
	r.order = r.order[:0]

	if snap == nil || len(snap.Sprites) == 0 {
		return
	}

	rows := r.mapTileH
	if rows == 0 {
		// No map loaded: treat the world as a single row band.
		rows = 1
	}
	if len(r.buckets) < rows {
		r.buckets = make([][]int, rows)
	}
	buckets := r.buckets[:rows]
	for i := range buckets {
		buckets[i] = buckets[i][:0]
	}

	// Counting pre-pass so each row bucket allocates once.
	counts := make([]int, rows)
	for i := range snap.Sprites {
		counts[r.spriteRow(&snap.Sprites[i], rows)]++
	}
	for row, n := range counts {
		if cap(buckets[row]) < n {
			buckets[row] = make([]int, 0, n)
		}
	}
	for i := range snap.Sprites {
		row := r.spriteRow(&snap.Sprites[i], rows)
		buckets[row] = append(buckets[row], i)
	}

	// Candidate rows: the camera's vertical extent plus a fixed margin.
	halfView := float64(r.height/2) / r.zoom
	rowMin := int((r.cameraY - halfView)) / tilePixels
	rowMax := int((r.cameraY + halfView)) / tilePixels
	rowMin -= collectMargin
	rowMax += collectMargin
	if rowMin < 0 {
		rowMin = 0
	}
	if rowMax >= rows {
		rowMax = rows - 1
	}

	for row := rowMin; row <= rowMax; row++ {
		for _, idx := range buckets[row] {
			if snap.Sprites[idx].Hidden() {
				continue
			}
			r.order = append(r.order, idx)
		}
	}

	// Stable: equal keys keep encounter order.
	sort.SliceStable(r.order, func(a, b int) bool {
		return depthKey(&snap.Sprites[r.order[a]]) < depthKey(&snap.Sprites[r.order[b]])
	})

	for _, idx := range r.order {
		r.flatten(&snap.Sprites[idx], snap.IsSelected(idx))
	}
}

func (r *Renderer) spriteRow(s *game.Sprite, rows int) int {
	row := s.Position.Y / tilePixels
	if row < 0 {
		row = 0
	}
	if row >= rows {
		row = rows - 1
	}
	return row
}

// flatten appends s's descriptor and its images, iterated in reverse
// declaration order so the first-declared image ends up topmost.
func (r *Renderer) flatten(s *game.Sprite, selected bool) {
	cx, cy := r.WorldToScreen(float64(s.Position.X), float64(s.Position.Y))

	owner := s.Owner
	if owner < 0 || owner >= game.MaxPlayers {
		owner = 0
	}

	spriteIdx := len(r.sprites)
	r.sprites = append(r.sprites, spriteInfo{
		centerX:    cx,
		centerY:    cy,
		owner:      owner,
		selected:   selected,
		circle:     s.SelectionCircle,
		circleVPos: s.SelectionCircleVPos,
		barWidth:   s.HealthBarWidth,
		hp:         s.HP,
		maxHP:      s.MaxHP,
		shields:    s.Shields,
		maxShields: s.MaxShields,
		energy:     s.Energy,
		maxEnergy:  s.MaxEnergy,
		invincible: s.Invincible,
	})

	for i := len(s.Images) - 1; i >= 0; i-- {
		img := &s.Images[i]
		if img.GRP == nil {
			continue
		}
		frame := img.GRP.Frame(img.FrameIndex)
		if frame == nil {
			continue
		}

		wx := float64(s.Position.X + img.Offset.X - img.GRP.Width/2 + frame.X)
		wy := float64(s.Position.Y + img.Offset.Y - img.GRP.Height/2 + frame.Y)
		sx, sy := r.WorldToScreen(wx, wy)

		// Fully off-screen images never become draw items.
		if sx+frame.W <= 0 || sx >= r.width || sy+frame.H <= 0 || sy >= r.height {
			continue
		}

		r.items = append(r.items, drawItem{
			x:        sx,
			y:        sy,
			frame:    frame,
			flipped:  img.Flipped,
			modifier: img.Modifier,
			sprite:   spriteIdx,
		})
	}
}
