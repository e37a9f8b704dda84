package navigation

import (
	"context"

	"go.uber.org/zap"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/motion"
	"github.com/lixenwraith/flowpath/parameter"
)

// Planner is the explicit context object tying a GridWorld, its source set, the cached
// flow field and the smoother together. It is single-writer: callers serialize access
type Planner struct {
	log     *zap.Logger
	world   *GridWorld
	sources *SourceSet
	cache   *FieldCache
	opts    SearchOptions

	heading  motion.Direction
	smoother *motion.Smoother

	path     []core.Point
	segments []motion.Segment
}

// Option configures a Planner
type Option func(*Planner)

// WithLogger attaches a logger, nop by default
func WithLogger(log *zap.Logger) Option {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// WithSearchOptions overrides the search tuning
func WithSearchOptions(opts SearchOptions) Option {
	return func(p *Planner) { p.opts = opts.normalized() }
}

// WithInitialHeading sets the smoother's heading before the first path node
func WithInitialHeading(d motion.Direction) Option {
	return func(p *Planner) { p.heading = d }
}

// NewPlanner creates a width×height planner with the start marker at the origin and
// the target marker in the opposite corner, default cell size and padding
func NewPlanner(width, height int, opts ...Option) (*Planner, error) {
	p := &Planner{
		log:     zap.NewNop(),
		cache:   NewFieldCache(),
		opts:    DefaultSearchOptions(),
		heading: motion.South,
	}
	for _, opt := range opts {
		opt(p)
	}

	world, err := NewGridWorld(width, height, parameter.NavCellSize, parameter.NavCellPadding)
	if err != nil {
		return nil, err
	}
	p.world = world
	p.sources = NewSourceSet(core.Point{}, core.Point{X: width - 1, Y: height - 1})
	if err := p.resync(); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure rebuilds the world for new dimensions
// Markers are clamped into the new bounds, custom sources dropped, field and path invalidated
func (p *Planner) Configure(width, height int, cellSize, cellPadding float64) error {
	if err := p.world.Configure(width, height, cellSize, cellPadding); err != nil {
		return err
	}
	p.sources.ClearCustom()
	p.sources.Clamp(width, height)
	p.log.Debug("world configured",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("spacing", p.world.CellSpacing()))
	return p.resync()
}

// SetInfluenceSources replaces the whole source list
// The field is invalidated but not recomputed until next requested
func (p *Planner) SetInfluenceSources(sources []Source) error {
	set, err := SourceSetFrom(sources)
	if err != nil {
		return err
	}
	if err := p.checkMarkers(set); err != nil {
		return err
	}
	p.sources = set
	return p.resync()
}

// AddSource registers a custom source, which also blocks its cell
// Only the target attracts; custom Attract sources are stored as Repel
func (p *Planner) AddSource(pos core.Point, strength float64, polarity Polarity) error {
	if !p.world.InBounds(pos) {
		return configErrorf("add source", "(%d,%d) out of bounds", pos.X, pos.Y)
	}
	if err := p.sources.Add(pos, strength, polarity); err != nil {
		return err
	}
	return p.resync()
}

// RemoveSource drops the custom source at pos, reporting whether one existed
func (p *Planner) RemoveSource(pos core.Point) bool {
	if !p.sources.Remove(pos) {
		return false
	}
	// Removing a custom source cannot violate marker invariants
	_ = p.resync()
	return true
}

// SetStart moves the start marker
func (p *Planner) SetStart(pos core.Point) error {
	if !p.world.InBounds(pos) {
		return configErrorf("set start", "(%d,%d) out of bounds", pos.X, pos.Y)
	}
	p.sources.SetStart(pos)
	return p.resync()
}

// SetTarget moves the target marker
func (p *Planner) SetTarget(pos core.Point) error {
	if !p.world.InBounds(pos) {
		return configErrorf("set target", "(%d,%d) out of bounds", pos.X, pos.Y)
	}
	p.sources.SetTarget(pos)
	return p.resync()
}

// SetTargetStrength changes the target's attraction
func (p *Planner) SetTargetStrength(strength float64) error {
	if err := p.sources.SetTargetStrength(strength); err != nil {
		return err
	}
	return p.resync()
}

// IsBlocked queries the world's blocked set
func (p *Planner) IsBlocked(pos core.Point) bool {
	return p.world.IsBlocked(pos)
}

// GenerateFlowField returns the field for the current sources, recomputing only when dirty
func (p *Planner) GenerateFlowField() (*FlowField, error) {
	recomputed, err := p.cache.Update(p.world.Width(), p.world.Height(), p.sources.All())
	if err != nil {
		return nil, err
	}
	if recomputed {
		p.log.Debug("flow field generated",
			zap.Uint64("generation", p.cache.Generation),
			zap.Int("sources", p.sources.Len()))
	}
	return p.cache.Field, nil
}

// StartSearch begins a stepped search from the start marker to the target marker
// done fires once when the search finishes or is cancelled
func (p *Planner) StartSearch(done func(Result)) (*Search, error) {
	field, err := p.GenerateFlowField()
	if err != nil {
		return nil, err
	}
	return p.startSearch(p.sources.Start().Position, p.sources.Target().Position, field, done)
}

// FindPath runs a search between arbitrary cells to completion
func (p *Planner) FindPath(ctx context.Context, start, goal core.Point, field *FlowField) (Result, error) {
	s, err := p.startSearch(start, goal, field, nil)
	if err != nil {
		return Result{}, err
	}
	res := s.Run(ctx)
	return res, res.Err()
}

func (p *Planner) startSearch(start, goal core.Point, field *FlowField, done func(Result)) (*Search, error) {
	if prev := p.world.Active(); prev != nil {
		p.log.Debug("superseding search", zap.String("search_id", prev.ID()))
	}
	s, err := p.world.StartSearch(start, goal, field, p.opts, func(r Result) {
		p.logResult(r)
		if done != nil {
			done(r)
		}
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug("search started",
		zap.String("search_id", s.ID()),
		zap.Int("start_x", start.X), zap.Int("start_y", start.Y),
		zap.Int("goal_x", goal.X), zap.Int("goal_y", goal.Y))
	return s, nil
}

func (p *Planner) logResult(r Result) {
	fields := []zap.Field{
		zap.String("search_id", r.ID),
		zap.Stringer("status", r.Status),
		zap.Int("expansions", r.Expansions),
	}
	if r.Found() {
		fields = append(fields, zap.Int("length", len(r.Path)), zap.Float64("cost", r.Cost))
	}
	p.log.Debug("search finished", fields...)
}

// SetPath smooths path into segments, replacing any prior segment list
func (p *Planner) SetPath(path []core.Point) []motion.Segment {
	p.path = append(p.path[:0:0], path...)
	p.segments = p.smootherFor().SetPath(p.path)
	return p.segments
}

// Plan generates the field, searches start→target and smooths the result
func (p *Planner) Plan(ctx context.Context) (Result, []motion.Segment, error) {
	field, err := p.GenerateFlowField()
	if err != nil {
		return Result{}, nil, err
	}
	res, err := p.FindPath(ctx, p.sources.Start().Position, p.sources.Target().Position, field)
	if err != nil {
		p.path, p.segments = nil, nil
		return res, nil, err
	}
	return res, p.SetPath(res.Path), nil
}

// Path returns the last path handed to SetPath
func (p *Planner) Path() []core.Point { return p.path }

// Segments returns the current smoothed segments
func (p *Planner) Segments() []motion.Segment { return p.segments }

// World exposes the grid for read-only queries
func (p *Planner) World() *GridWorld { return p.world }

// Sources returns start, target, then custom sources
func (p *Planner) Sources() []Source { return p.sources.All() }

// Start returns the start marker position
func (p *Planner) Start() core.Point { return p.sources.Start().Position }

// Target returns the target marker position
func (p *Planner) Target() core.Point { return p.sources.Target().Position }

// Options returns the active search tuning
func (p *Planner) Options() SearchOptions { return p.opts }

func (p *Planner) smootherFor() *motion.Smoother {
	if p.smoother == nil {
		p.smoother = motion.NewSmoother(p.world, p.world.CellSpacing(), motion.WithInitialHeading(p.heading))
	}
	return p.smoother
}

func (p *Planner) checkMarkers(set *SourceSet) error {
	for _, s := range []Source{set.Start(), set.Target()} {
		if !p.world.InBounds(s.Position) {
			return configErrorf("sources", "%s marker (%d,%d) out of bounds", s.Role, s.Position.X, s.Position.Y)
		}
	}
	return nil
}

// resync pushes the source list into the world and invalidates derived state
func (p *Planner) resync() error {
	if err := p.world.SetSources(p.sources.All()); err != nil {
		return err
	}
	p.cache.MarkDirty()
	p.smoother = nil
	p.path, p.segments = nil, nil
	return nil
}
