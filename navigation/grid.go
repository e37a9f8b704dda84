package navigation

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/parameter"
)

// Cardinal neighbour offsets in expansion order: N, S, E, W (North is +Y)
var cardinalOffsets = [4]core.Point{
	{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0},
}

type nodeState uint8

const (
	nodeUnseen nodeState = iota
	nodeOpen
	nodeClosed
)

// node is one arena slot; its coordinate is implied by its index
// parent and heapIdx are arena/heap indices, -1 when absent
type node struct {
	g, h, f float64
	seq     uint64
	parent  int32
	heapIdx int32
	state   nodeState
}

// GridWorld owns the grid dimensions, the blocked set and the reusable node arena
// It admits a single active search; starting another or mutating the world cancels it
type GridWorld struct {
	width, height int
	cellSize      float64
	cellPadding   float64

	blocked *BlockedSet
	nodes   []node

	// epoch increments on every rebuild and every new search
	epoch  uint64
	active *Search
}

// NewGridWorld builds a world of the given dimensions with no blocked cells
func NewGridWorld(width, height int, cellSize, cellPadding float64) (*GridWorld, error) {
	w := &GridWorld{}
	if err := w.Configure(width, height, cellSize, cellPadding); err != nil {
		return nil, err
	}
	return w, nil
}

// Configure (re)builds the node arena and clears the blocked set
// Any in-flight search is cancelled; dimensions are never clamped
func (w *GridWorld) Configure(width, height int, cellSize, cellPadding float64) error {
	if width <= 0 || height <= 0 {
		return configErrorf("configure", "invalid dimensions %dx%d", width, height)
	}
	if !(cellSize > 0) || cellPadding < 0 {
		return configErrorf("configure", "invalid cell size %g / padding %g", cellSize, cellPadding)
	}
	w.cancelActive()

	w.width = width
	w.height = height
	w.cellSize = cellSize
	w.cellPadding = cellPadding

	if w.blocked == nil {
		w.blocked = NewBlockedSet(width, height)
	} else {
		w.blocked.Resize(width, height)
	}
	w.nodes = make([]node, width*height)
	w.resetNodes()
	w.epoch++
	return nil
}

// SetSources validates the source list and rebuilds the blocked set from it
func (w *GridWorld) SetSources(sources []Source) error {
	if err := ValidateSources(sources); err != nil {
		return err
	}
	w.cancelActive()
	w.blocked.Compute(sources)
	w.epoch++
	return nil
}

// Width returns the grid width in cells
func (w *GridWorld) Width() int { return w.width }

// Height returns the grid height in cells
func (w *GridWorld) Height() int { return w.height }

// CellSpacing returns world units between adjacent cell centres (size + padding)
func (w *GridWorld) CellSpacing() float64 { return w.cellSize + w.cellPadding }

// CellSize returns the rendered edge length of a cell
func (w *GridWorld) CellSize() float64 { return w.cellSize }

// InBounds reports whether p lies on the grid
func (w *GridWorld) InBounds(p core.Point) bool {
	return p.InBounds(w.width, w.height)
}

// IsBlocked returns true iff p is in the blocked set and is not the start or target
func (w *GridWorld) IsBlocked(p core.Point) bool {
	return w.blocked.IsBlocked(p)
}

// IsNearBlocked reports whether a blocked cell lies within radius of p
// Advisory query for presentation and smoothing heuristics, not used for adjacency
func (w *GridWorld) IsNearBlocked(p core.Point, radius float64) bool {
	return w.blocked.IsNearBlocked(p, radius)
}

// NearBlocked is IsNearBlocked with the default advisory radius
func (w *GridWorld) NearBlocked(p core.Point) bool {
	return w.IsNearBlocked(p, parameter.NavAdvisoryRadius)
}

// Blocked returns the blocked cells in source order
func (w *GridWorld) Blocked() []core.Point {
	out := make([]core.Point, len(w.blocked.Points))
	copy(out, w.blocked.Points)
	return out
}

// Neighbors appends the in-bounds, unblocked cardinal neighbours of p to buf (N, S, E, W)
func (w *GridWorld) Neighbors(p core.Point, buf []core.Point) []core.Point {
	for _, d := range cardinalOffsets {
		n := p.Add(d)
		if !w.InBounds(n) || w.IsBlocked(n) {
			continue
		}
		buf = append(buf, n)
	}
	return buf
}

// CellToWorld maps a cell to world space, cell (0,0) at the origin
func (w *GridWorld) CellToWorld(p core.Point) cp.Vector {
	s := w.CellSpacing()
	return cp.Vector{X: float64(p.X) * s, Y: float64(p.Y) * s}
}

// WorldToCell maps a world position to the nearest cell, clamped to the grid
func (w *GridWorld) WorldToCell(v cp.Vector) core.Point {
	s := w.CellSpacing()
	return clampPoint(core.Point{
		X: int(math.Round(v.X / s)),
		Y: int(math.Round(v.Y / s)),
	}, w.width, w.height)
}

// Active returns the in-flight search, nil if none
func (w *GridWorld) Active() *Search {
	return w.active
}

func (w *GridWorld) index(p core.Point) int32 {
	return int32(p.Y*w.width + p.X)
}

func (w *GridWorld) point(idx int32) core.Point {
	return core.Point{X: int(idx) % w.width, Y: int(idx) / w.width}
}

// resetNodes restores every arena slot to g=∞, no parent
func (w *GridWorld) resetNodes() {
	inf := math.Inf(1)
	for i := range w.nodes {
		w.nodes[i] = node{g: inf, f: inf, parent: -1, heapIdx: -1}
	}
}

func (w *GridWorld) cancelActive() {
	if w.active != nil {
		w.active.Cancel()
	}
}
