package navigation

import (
	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/parameter"
)

// Polarity selects whether a source pulls the flow toward itself or pushes it away
type Polarity uint8

const (
	Attract Polarity = iota
	Repel
)

func (p Polarity) String() string {
	if p == Attract {
		return "attract"
	}
	return "repel"
}

// Role marks the two mandatory markers among the sources
type Role uint8

const (
	RoleCustom Role = iota
	RoleStart
	RoleTarget
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleTarget:
		return "target"
	default:
		return "custom"
	}
}

// Source is one influence point of the flow field
type Source struct {
	Position core.Point
	Strength float64
	Polarity Polarity
	Role     Role
}

// StartSource returns the start marker with its default repulsion strength
func StartSource(p core.Point) Source {
	return Source{Position: p, Strength: parameter.NavStartStrength, Polarity: Repel, Role: RoleStart}
}

// TargetSource returns the target marker with its default attraction strength
func TargetSource(p core.Point) Source {
	return Source{Position: p, Strength: parameter.NavTargetStrength, Polarity: Attract, Role: RoleTarget}
}

// ValidateSources checks the marker invariants: every strength positive,
// exactly one repelling start and exactly one attracting target
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return configErrorf("sources", "source list is empty")
	}
	starts, targets := 0, 0
	for i, s := range sources {
		if !(s.Strength > 0) {
			return configErrorf("sources", "source %d at (%d,%d) has non-positive strength %g", i, s.Position.X, s.Position.Y, s.Strength)
		}
		switch s.Role {
		case RoleStart:
			if s.Polarity != Repel {
				return configErrorf("sources", "start marker must repel")
			}
			starts++
		case RoleTarget:
			if s.Polarity != Attract {
				return configErrorf("sources", "target marker must attract")
			}
			targets++
		}
	}
	if starts != 1 {
		return configErrorf("sources", "want exactly one start marker, have %d", starts)
	}
	if targets != 1 {
		return configErrorf("sources", "want exactly one target marker, have %d", targets)
	}
	return nil
}

// SourceSet is the mutable source list owned by the configuration layer
// It always holds one start and one target; custom sources follow in insertion order
type SourceSet struct {
	start   Source
	target  Source
	customs []Source
}

// NewSourceSet creates a set holding only the default start and target markers
func NewSourceSet(start, target core.Point) *SourceSet {
	return &SourceSet{
		start:  StartSource(start),
		target: TargetSource(target),
	}
}

// SourceSetFrom builds a set from a validated list
func SourceSetFrom(sources []Source) (*SourceSet, error) {
	if err := ValidateSources(sources); err != nil {
		return nil, err
	}
	set := &SourceSet{}
	for _, s := range sources {
		switch s.Role {
		case RoleStart:
			set.start = s
		case RoleTarget:
			set.target = s
		default:
			set.customs = append(set.customs, s)
		}
	}
	return set, nil
}

// Start returns the start marker
func (s *SourceSet) Start() Source { return s.start }

// Target returns the target marker
func (s *SourceSet) Target() Source { return s.target }

// Custom returns a copy of the non-marker sources
func (s *SourceSet) Custom() []Source {
	out := make([]Source, len(s.customs))
	copy(out, s.customs)
	return out
}

// All returns start, target, then the custom sources as a fresh slice
func (s *SourceSet) All() []Source {
	out := make([]Source, 0, 2+len(s.customs))
	out = append(out, s.start, s.target)
	return append(out, s.customs...)
}

// Len returns the total number of sources including both markers
func (s *SourceSet) Len() int {
	return 2 + len(s.customs)
}

// SetStart moves the start marker, strength is preserved
func (s *SourceSet) SetStart(p core.Point) {
	s.start.Position = p
}

// SetTarget moves the target marker, strength is preserved
func (s *SourceSet) SetTarget(p core.Point) {
	s.target.Position = p
}

// SetTargetStrength changes the attraction of the target marker
func (s *SourceSet) SetTargetStrength(strength float64) error {
	if !(strength > 0) {
		return configErrorf("target strength", "strength must be positive, got %g", strength)
	}
	s.target.Strength = strength
	return nil
}

// Add appends a custom source
// Only the target attracts: a custom Attract source is stored as Repel
func (s *SourceSet) Add(p core.Point, strength float64, polarity Polarity) error {
	if !(strength > 0) {
		return configErrorf("add source", "strength must be positive, got %g", strength)
	}
	if polarity == Attract {
		polarity = Repel
	}
	s.customs = append(s.customs, Source{Position: p, Strength: strength, Polarity: polarity, Role: RoleCustom})
	return nil
}

// Remove deletes the first custom source at p, markers cannot be removed
func (s *SourceSet) Remove(p core.Point) bool {
	for i, c := range s.customs {
		if c.Position == p {
			s.customs = append(s.customs[:i], s.customs[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether a custom source sits at p
func (s *SourceSet) Has(p core.Point) bool {
	for _, c := range s.customs {
		if c.Position == p {
			return true
		}
	}
	return false
}

// ClearCustom drops every custom source, keeping the markers
func (s *SourceSet) ClearCustom() {
	s.customs = s.customs[:0]
}

// Clamp pulls both markers into a width×height grid
func (s *SourceSet) Clamp(width, height int) {
	s.start.Position = clampPoint(s.start.Position, width, height)
	s.target.Position = clampPoint(s.target.Position, width, height)
}

func clampPoint(p core.Point, width, height int) core.Point {
	return core.Point{X: max(0, min(width-1, p.X)), Y: max(0, min(height-1, p.Y))}
}
