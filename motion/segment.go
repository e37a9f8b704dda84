package motion

import (
	"github.com/jakecoffman/cp"
)

// SegmentKind classifies how a segment was synthesized from the discrete path
type SegmentKind uint8

const (
	Straight SegmentKind = iota
	Turn
	DiagonalStart
	DiagonalContinue
	DiagonalEnd
)

func (k SegmentKind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Turn:
		return "turn"
	case DiagonalStart:
		return "diagonal_start"
	case DiagonalContinue:
		return "diagonal_continue"
	case DiagonalEnd:
		return "diagonal_end"
	default:
		return "unknown"
	}
}

// IsDiagonalTransition reports kinds that absorb an extra path node
func (k SegmentKind) IsDiagonalTransition() bool {
	return k == DiagonalStart || k == DiagonalContinue
}

// Segment is one piece of the smoothed path in world space
// Linear when HasControl is false, quadratic Bezier through Control otherwise
type Segment struct {
	Kind       SegmentKind
	Start      cp.Vector
	Control    cp.Vector
	HasControl bool
	End        cp.Vector
}

func line(kind SegmentKind, start, end cp.Vector) Segment {
	return Segment{Kind: kind, Start: start, End: end}
}

func curve(kind SegmentKind, start, control, end cp.Vector) Segment {
	return Segment{Kind: kind, Start: start, Control: control, HasControl: true, End: end}
}

func (s Segment) scaled(k float64) Segment {
	s.Start = s.Start.Mult(k)
	s.Control = s.Control.Mult(k)
	s.End = s.End.Mult(k)
	return s
}
