package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/maze"
	"github.com/lixenwraith/flowpath/navigation"
	"github.com/lixenwraith/flowpath/parameter"
)

// Scenario is a grid plus its influence sources as stored on disk
type Scenario struct {
	Name           string       `yaml:"name"`
	Width          int          `yaml:"width"`
	Height         int          `yaml:"height"`
	CellSize       float64      `yaml:"cell_size,omitempty"`
	CellPadding    *float64     `yaml:"cell_padding,omitempty"`
	Start          PointSpec    `yaml:"start"`
	Target         PointSpec    `yaml:"target"`
	StartStrength  float64      `yaml:"start_strength,omitempty"`
	TargetStrength float64      `yaml:"target_strength,omitempty"`
	Sources        []SourceSpec `yaml:"sources,omitempty"`
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SourceSpec struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	Strength float64 `yaml:"strength"`
	Polarity string  `yaml:"polarity,omitempty"` // repel (default) or attract
}

func (p PointSpec) Point() core.Point { return core.Point{X: p.X, Y: p.Y} }

func specOf(p core.Point) PointSpec { return PointSpec{X: p.X, Y: p.Y} }

// Load reads and parses a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario document and validates its sources
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if _, err := s.InfluenceSources(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the scenario as YAML
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("scenario: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scenario: save %s: %w", path, err)
	}
	return nil
}

// Spacing returns the cell size and padding with defaults applied
func (s *Scenario) Spacing() (size, padding float64) {
	size, padding = s.CellSize, parameter.NavCellPadding
	if size <= 0 {
		size = parameter.NavCellSize
	}
	if s.CellPadding != nil {
		padding = *s.CellPadding
	}
	return size, padding
}

// InfluenceSources converts the document into a navigation source list
func (s *Scenario) InfluenceSources() ([]navigation.Source, error) {
	start := navigation.StartSource(s.Start.Point())
	if s.StartStrength != 0 {
		start.Strength = s.StartStrength
	}
	target := navigation.TargetSource(s.Target.Point())
	if s.TargetStrength != 0 {
		target.Strength = s.TargetStrength
	}
	out := []navigation.Source{start, target}
	for i, src := range s.Sources {
		pol, err := parsePolarity(src.Polarity)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		// Only the target attracts
		if pol == navigation.Attract {
			pol = navigation.Repel
		}
		out = append(out, navigation.Source{
			Position: core.Point{X: src.X, Y: src.Y},
			Strength: src.Strength,
			Polarity: pol,
			Role:     navigation.RoleCustom,
		})
	}
	if err := navigation.ValidateSources(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply reconfigures the planner to this scenario
func (s *Scenario) Apply(p *navigation.Planner) error {
	sources, err := s.InfluenceSources()
	if err != nil {
		return err
	}
	// Reject before Configure so a bad document leaves the planner untouched
	if err := s.checkMarkers(); err != nil {
		return err
	}
	size, padding := s.Spacing()
	if err := p.Configure(s.Width, s.Height, size, padding); err != nil {
		return err
	}
	return p.SetInfluenceSources(sources)
}

func (s *Scenario) checkMarkers() error {
	for _, m := range []struct {
		role string
		p    core.Point
	}{{"start", s.Start.Point()}, {"target", s.Target.Point()}} {
		if !m.p.InBounds(s.Width, s.Height) {
			return fmt.Errorf("%s marker (%d,%d) outside %dx%d grid", m.role, m.p.X, m.p.Y, s.Width, s.Height)
		}
	}
	return nil
}

// NewPlanner builds a planner already configured for this scenario
func (s *Scenario) NewPlanner(opts ...navigation.Option) (*navigation.Planner, error) {
	p, err := navigation.NewPlanner(s.Width, s.Height, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FromPlanner snapshots a planner's current state
func FromPlanner(name string, p *navigation.Planner) *Scenario {
	w := p.World()
	padding := w.CellSpacing() - w.CellSize()
	s := &Scenario{
		Name:        name,
		Width:       w.Width(),
		Height:      w.Height(),
		CellSize:    w.CellSize(),
		CellPadding: &padding,
	}
	for _, src := range p.Sources() {
		switch src.Role {
		case navigation.RoleStart:
			s.Start = specOf(src.Position)
			s.StartStrength = src.Strength
		case navigation.RoleTarget:
			s.Target = specOf(src.Position)
			s.TargetStrength = src.Strength
		default:
			s.Sources = append(s.Sources, SourceSpec{X: src.Position.X, Y: src.Position.Y, Strength: src.Strength, Polarity: src.Polarity.String()})
		}
	}
	return s
}

// FromLayout turns a generated maze into a scenario whose walls are repelling sources
func FromLayout(name string, l maze.Layout, wallStrength float64) *Scenario {
	s := &Scenario{
		Name:   name,
		Width:  l.Width,
		Height: l.Height,
		Start:  specOf(l.Start),
		Target: specOf(l.Target),
	}
	for _, w := range l.Walls {
		s.Sources = append(s.Sources, SourceSpec{X: w.X, Y: w.Y, Strength: wallStrength, Polarity: navigation.Repel.String()})
	}
	return s
}

func parsePolarity(s string) (navigation.Polarity, error) {
	switch strings.ToLower(s) {
	case "", "repel":
		return navigation.Repel, nil
	case "attract":
		return navigation.Attract, nil
	}
	return navigation.Repel, fmt.Errorf("unknown polarity %q", s)
}
