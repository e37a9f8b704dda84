package navigation

import (
	"math"

	"github.com/lixenwraith/flowpath/core"
)

// BlockedSet is the impassable-cell view derived from the influence sources
// Membership is exact-coordinate; start and target cells are exempt regardless of overlap
type BlockedSet struct {
	Width, Height int
	Blocked       []bool       // Row-major membership
	Points        []core.Point // Distinct blocked cells in source order, for radius queries

	start, target core.Point
}

// NewBlockedSet creates an empty set for the given dimensions
func NewBlockedSet(width, height int) *BlockedSet {
	return &BlockedSet{
		Width:   width,
		Height:  height,
		Blocked: make([]bool, width*height),
	}
}

// Resize adjusts dimensions and clears all cells
func (b *BlockedSet) Resize(width, height int) {
	size := width * height
	if cap(b.Blocked) < size {
		b.Blocked = make([]bool, size)
	} else {
		b.Blocked = b.Blocked[:size]
		clear(b.Blocked)
	}
	b.Points = b.Points[:0]
	b.Width = width
	b.Height = height
}

// Compute rebuilds membership from sources
// Every source position except the start and target markers blocks its cell
func (b *BlockedSet) Compute(sources []Source) {
	clear(b.Blocked)
	b.Points = b.Points[:0]
	for _, s := range sources {
		switch s.Role {
		case RoleStart:
			b.start = s.Position
		case RoleTarget:
			b.target = s.Position
		}
	}
	for _, s := range sources {
		if s.Role != RoleCustom {
			continue
		}
		p := s.Position
		if !p.InBounds(b.Width, b.Height) || p == b.start || p == b.target {
			continue
		}
		idx := p.Y*b.Width + p.X
		if b.Blocked[idx] {
			continue
		}
		b.Blocked[idx] = true
		b.Points = append(b.Points, p)
	}
}

// IsBlocked returns true iff p is a member and not the start or target cell
func (b *BlockedSet) IsBlocked(p core.Point) bool {
	if !p.InBounds(b.Width, b.Height) {
		return false
	}
	return b.Blocked[p.Y*b.Width+p.X]
}

// IsNearBlocked returns true if any blocked cell lies within radius of p (Euclidean)
// Advisory only: graph adjacency never consults it
func (b *BlockedSet) IsNearBlocked(p core.Point, radius float64) bool {
	for _, q := range b.Points {
		if math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)) <= radius {
			return true
		}
	}
	return false
}

// Stats returns cell totals for debug output
func (b *BlockedSet) Stats() (total, free, blocked int) {
	total = len(b.Blocked)
	blocked = len(b.Points)
	return total, total - blocked, blocked
}
