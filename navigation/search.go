package navigation

import (
	"context"

	"github.com/google/uuid"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/parameter"
)

// Status is the lifecycle state of a search
type Status uint8

const (
	StatusRunning Status = iota
	StatusFound
	StatusNoPath
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFound:
		return "found"
	case StatusNoPath:
		return "no_path"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SearchOptions tunes a single search
type SearchOptions struct {
	IterationCap int           // Expansions allowed before reporting no path
	StepBudget   int           // Expansions per Step when the caller passes budget <= 0
	Heuristic    HeuristicMode // Distance metric for h
	Strict       bool          // Use the admissible heuristic, disabling flow bias in h
}

// DefaultSearchOptions returns the stock tuning
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		IterationCap: parameter.NavIterationCap,
		StepBudget:   parameter.NavStepBudget,
		Heuristic:    HeuristicManhattan,
	}
}

func (o SearchOptions) normalized() SearchOptions {
	if o.IterationCap <= 0 {
		o.IterationCap = parameter.NavIterationCap
	}
	if o.StepBudget <= 0 {
		o.StepBudget = parameter.NavStepBudget
	}
	return o
}

// Result is the outcome of a finished search, or a progress snapshot while running
type Result struct {
	ID         string
	Status     Status
	Path       []core.Point // Start to goal inclusive, nil unless found
	GCosts     []float64    // Cost-so-far at each path element
	Cost       float64      // g of the goal
	Expansions int
}

// Err maps a non-success status to its sentinel, nil when found or still running
func (r Result) Err() error {
	switch r.Status {
	case StatusNoPath:
		return ErrNoPathFound
	case StatusCancelled:
		return ErrSearchCancelled
	default:
		return nil
	}
}

// Found reports whether a path was produced
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// Search is one cooperatively stepped A* run over a GridWorld
// It reads the world's node arena directly, so at most one Search per world is live;
// starting another, or reconfiguring the world, cancels it
type Search struct {
	id    string
	world *GridWorld
	field *FlowField
	opts  SearchOptions

	start, goal core.Point
	epoch       uint64

	open       openSet
	seq        uint64
	expansions int
	explored   []core.Point
	nbuf       []core.Point

	status Status
	result Result
	done   func(Result)
}

// StartSearch resets the node arena and begins a search from start to goal
// Any search already running on this world is cancelled first. done, if non-nil, is
// invoked exactly once when the search finishes, including on cancellation
// A blocked goal finishes immediately with StatusNoPath
func (w *GridWorld) StartSearch(start, goal core.Point, field *FlowField, opts SearchOptions, done func(Result)) (*Search, error) {
	if field == nil {
		return nil, configErrorf("search", "nil flow field")
	}
	if field.Width != w.width || field.Height != w.height {
		return nil, configErrorf("search", "field %dx%d does not match grid %dx%d", field.Width, field.Height, w.width, w.height)
	}
	if !w.InBounds(start) {
		return nil, configErrorf("search", "start (%d,%d) out of bounds", start.X, start.Y)
	}
	if !w.InBounds(goal) {
		return nil, configErrorf("search", "goal (%d,%d) out of bounds", goal.X, goal.Y)
	}

	w.cancelActive()
	w.resetNodes()
	w.epoch++

	s := &Search{
		id:     uuid.NewString(),
		world:  w,
		field:  field,
		opts:   opts.normalized(),
		start:  start,
		goal:   goal,
		epoch:  w.epoch,
		status: StatusRunning,
		done:   done,
		nbuf:   make([]core.Point, 0, len(cardinalOffsets)),
	}
	s.result = Result{ID: s.id, Status: StatusRunning}
	s.open.reset(w.nodes)
	w.active = s

	if w.IsBlocked(goal) {
		s.finish(StatusNoPath, -1)
		return s, nil
	}

	idx := w.index(start)
	n := &w.nodes[idx]
	n.g = 0
	n.h = s.heuristic(start)
	n.f = n.h
	n.seq = s.nextSeq()
	n.state = nodeOpen
	s.open.push(idx)
	return s, nil
}

// FindPath runs a search to completion, honouring ctx between step batches
func (w *GridWorld) FindPath(ctx context.Context, start, goal core.Point, field *FlowField, opts SearchOptions) (Result, error) {
	s, err := w.StartSearch(start, goal, field, opts, nil)
	if err != nil {
		return Result{}, err
	}
	res := s.Run(ctx)
	return res, res.Err()
}

// ID returns the search's correlation id
func (s *Search) ID() string { return s.id }

// Start returns the search origin
func (s *Search) Start() core.Point { return s.start }

// Goal returns the search destination
func (s *Search) Goal() core.Point { return s.goal }

// Status returns the current lifecycle state
func (s *Search) Status() Status { return s.status }

// Expansions returns the number of nodes popped so far
func (s *Search) Expansions() int { return s.expansions }

// Result returns the final result, or a progress snapshot while running
func (s *Search) Result() Result {
	if s.status == StatusRunning {
		r := s.result
		r.Expansions = s.expansions
		return r
	}
	return s.result
}

// Explored returns the closed cells in expansion order
func (s *Search) Explored() []core.Point {
	out := make([]core.Point, len(s.explored))
	copy(out, s.explored)
	return out
}

// Step performs up to budget expansions, budget <= 0 uses the configured step budget
// Returns the status after the batch; batch size never changes the outcome
func (s *Search) Step(budget int) Status {
	if s.status != StatusRunning {
		return s.status
	}
	if s.epoch != s.world.epoch {
		s.finish(StatusCancelled, -1)
		return s.status
	}
	if budget <= 0 {
		budget = s.opts.StepBudget
	}

	w := s.world
	goalIdx := w.index(s.goal)
	for i := 0; i < budget; i++ {
		if s.open.len() == 0 || s.expansions >= s.opts.IterationCap {
			s.finish(StatusNoPath, -1)
			return s.status
		}

		idx := s.open.pop()
		cur := &w.nodes[idx]
		cur.state = nodeClosed
		s.expansions++
		p := w.point(idx)
		s.explored = append(s.explored, p)

		if idx == goalIdx {
			s.finish(StatusFound, idx)
			return s.status
		}

		s.nbuf = w.Neighbors(p, s.nbuf[:0])
		for _, np := range s.nbuf {
			ni := w.index(np)
			nb := &w.nodes[ni]
			if nb.state == nodeClosed {
				continue
			}
			g := cur.g + Cost(s.field, p, np)
			switch nb.state {
			case nodeUnseen:
				nb.g = g
				nb.h = s.heuristic(np)
				nb.f = g + nb.h
				nb.parent = idx
				nb.seq = s.nextSeq()
				nb.state = nodeOpen
				s.open.push(ni)
			case nodeOpen:
				if g < nb.g {
					nb.g = g
					nb.f = g + nb.h
					nb.parent = idx
					s.open.decreased(ni)
				}
			}
		}
	}
	return s.status
}

// Run steps the search to completion, cancelling it if ctx is done between batches
func (s *Search) Run(ctx context.Context) Result {
	for s.Step(s.opts.StepBudget) == StatusRunning {
		if ctx.Err() != nil {
			s.Cancel()
			break
		}
	}
	return s.result
}

// Cancel abandons a running search; no-op once finished
func (s *Search) Cancel() {
	if s.status == StatusRunning {
		s.finish(StatusCancelled, -1)
	}
}

func (s *Search) heuristic(p core.Point) float64 {
	if s.opts.Strict {
		return StrictHeuristic(p, s.goal, s.opts.Heuristic)
	}
	return Heuristic(s.field, p, s.goal, s.opts.Heuristic)
}

func (s *Search) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// finish records the outcome, releases the world and fires the callback once
func (s *Search) finish(status Status, goalIdx int32) {
	s.status = status
	s.result = Result{
		ID:         s.id,
		Status:     status,
		Expansions: s.expansions,
	}
	if status == StatusFound {
		s.result.Path, s.result.GCosts = s.reconstruct(goalIdx)
		s.result.Cost = s.result.GCosts[len(s.result.GCosts)-1]
	}
	if s.world.active == s {
		s.world.active = nil
	}
	if s.done != nil {
		done := s.done
		s.done = nil
		done(s.result)
	}
}

func (s *Search) reconstruct(goalIdx int32) ([]core.Point, []float64) {
	w := s.world
	var path []core.Point
	var costs []float64
	for idx := goalIdx; idx != -1; idx = w.nodes[idx].parent {
		path = append(path, w.point(idx))
		costs = append(costs, w.nodes[idx].g)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
		costs[i], costs[j] = costs[j], costs[i]
	}
	return path, costs
}
