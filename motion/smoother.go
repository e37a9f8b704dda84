package motion

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/parameter"
	"github.com/lixenwraith/flowpath/vmath"
)

// Blocker answers corner-legality queries for diagonal shortcuts
type Blocker interface {
	IsBlocked(p core.Point) bool
}

// Smoother converts a 4-connected grid path into curve segments
// Diagonal segments are synthesized only where the off-path corner cell is clear
type Smoother struct {
	blocker Blocker
	spacing float64
	heading Direction
	inset   float64

	segments []Segment
}

// SmootherOption configures a Smoother
type SmootherOption func(*Smoother)

// WithInitialHeading sets the heading assumed before the first node, South by default
func WithInitialHeading(d Direction) SmootherOption {
	return func(s *Smoother) { s.heading = d }
}

// WithControlInset overrides the diagonal entry/exit control offset in cells
func WithControlInset(inset float64) SmootherOption {
	return func(s *Smoother) { s.inset = inset }
}

// NewSmoother creates a smoother; spacing scales grid coordinates into world units
// A nil blocker treats every cell as clear
func NewSmoother(blocker Blocker, spacing float64, opts ...SmootherOption) *Smoother {
	s := &Smoother{
		blocker: blocker,
		spacing: spacing,
		heading: South,
		inset:   parameter.NavDiagonalControlInset,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segments returns the segments of the last SetPath call
func (s *Smoother) Segments() []Segment {
	return s.segments
}

// SetPath replaces the current segment list with the smoothing of path
// Fewer than two nodes yields no segments, two nodes a single Straight
func (s *Smoother) SetPath(path []core.Point) []Segment {
	s.segments = s.build(path)
	return s.segments
}

func (s *Smoother) blocked(p core.Point) bool {
	return s.blocker != nil && s.blocker.IsBlocked(p)
}

func (s *Smoother) build(path []core.Point) []Segment {
	n := len(path)
	if n < 2 {
		return nil
	}
	if n == 2 {
		seg := line(Straight, centre(path[0]), centre(path[1]))
		return []Segment{seg.scaled(s.spacing)}
	}

	segs := make([]Segment, 0, n-1)
	heading := s.heading
	last := n - 1

	i := 0
	for ; i <= n-3; i++ {
		cur, next, far := path[i], path[i+1], path[i+2]
		a := DominantAxis(next.Sub(cur))
		b := DominantAxis(far.Sub(next))
		c := centre(cur)
		hv := heading.Vector()
		entry := c.Sub(hv.Mult(0.5))

		if !heading.IsDiagonal() {
			diagonal := (b == heading && a.Perpendicular(heading)) || (a == heading && b.Perpendicular(heading))
			if diagonal && !s.blocked(cur.Add(b.Offset())) {
				end := c.Add(a.Vector().Add(b.Vector()).Mult(0.5))
				if i+2 == last {
					end = centre(far)
				}
				segs = append(segs, curve(DiagonalStart, entry, c.Add(hv.Mult(s.inset)), end))
				heading, _ = DiagonalOf(a, b)
				i++
				continue
			}
			if a == heading {
				segs = append(segs, line(Straight, entry, c.Add(a.Vector().Mult(0.5))))
				continue
			}
			segs = append(segs, curve(Turn, entry, c, c.Add(a.Vector().Mult(0.5))))
			heading = a
			continue
		}

		flank := (a == heading.CCW45() && b == heading.CW45()) || (a == heading.CW45() && b == heading.CCW45())
		if flank && !s.blocked(cur.Add(b.Offset())) {
			end := c.Add(hv.Mult(0.5))
			if i+2 == last {
				end = c.Add(hv)
			}
			segs = append(segs, line(DiagonalContinue, entry, end))
			i++
			continue
		}
		av := a.Vector()
		segs = append(segs, curve(DiagonalEnd, entry, c.Sub(av.Mult(s.inset)), c.Add(av.Mult(0.5))))
		heading = a
	}

	// Final edge into the goal when the loop did not absorb it
	if i == n-2 {
		cur, goal := path[n-2], path[n-1]
		a := DominantAxis(goal.Sub(cur))
		c := centre(cur)
		entry := c.Sub(heading.Vector().Mult(0.5))
		switch {
		case heading.IsDiagonal():
			segs = append(segs, curve(DiagonalEnd, entry, c, centre(goal)))
		case a == heading:
			segs = append(segs, line(Straight, entry, centre(goal)))
		default:
			segs = append(segs, curve(Turn, entry, c, centre(goal)))
		}
	}

	segs[0].Start = centre(path[0])
	for k := range segs {
		segs[k] = segs[k].scaled(s.spacing)
	}
	return segs
}

func centre(p core.Point) cp.Vector {
	return vmath.FromInts(p.X, p.Y)
}
