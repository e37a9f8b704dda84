package maze

import (
	"errors"
	"math/rand"
	"time"

	"github.com/lixenwraith/flowpath/core"
)

// ErrTooSmall is returned for layouts that cannot hold a single corridor
var ErrTooSmall = errors.New("maze: layout needs at least 3x3 cells")

// Config controls obstacle layout generation
type Config struct {
	Width, Height int

	// Braid in [0,1]: probability a dead end is opened into a loop; 0 keeps a perfect maze
	Braid float64

	// Density in (0,1]: fraction of maze walls kept as obstacles, 0 means all
	Density float64

	Seed int64 // 0 picks a time-based seed
}

// Layout is a generated obstacle set with its start and target markers
type Layout struct {
	Width, Height int
	Walls         []core.Point // Row-major order
	Start, Target core.Point

	// Reference is a BFS shortest path start→target over the open cells
	Reference []core.Point
}

// Generate carves a maze with a recursive backtracker, braids dead ends, thins the
// walls by density and returns the remaining walls as obstacle cells
// Start is the lower-left room, target the upper-right room; both are always open
func Generate(cfg Config) (Layout, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return Layout{}, ErrTooSmall
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := newGrid(cfg.Width, cfg.Height)
	start := core.Point{X: 1, Y: 1}
	target := core.Point{X: lastOdd(cfg.Width), Y: lastOdd(cfg.Height)}

	g.carve(start, rng)
	if cfg.Braid > 0 {
		g.braid(cfg.Braid, rng)
	}
	if cfg.Density > 0 && cfg.Density < 1 {
		g.thin(cfg.Density, rng)
	}
	g.set(start, false)
	g.set(target, false)

	layout := Layout{
		Width:  cfg.Width,
		Height: cfg.Height,
		Start:  start,
		Target: target,
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			p := core.Point{X: x, Y: y}
			if g.wall(p) {
				layout.Walls = append(layout.Walls, p)
			}
		}
	}
	layout.Reference = g.shortest(start, target)
	return layout, nil
}

// IsWall reports whether p is an obstacle in the layout
func (l Layout) IsWall(p core.Point) bool {
	for _, w := range l.Walls {
		if w == p {
			return true
		}
	}
	return false
}

var (
	steps = [4]core.Point{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}
	jumps = [4]core.Point{{X: 0, Y: 2}, {X: 0, Y: -2}, {X: 2, Y: 0}, {X: -2, Y: 0}}
)

// grid is a flat wall bitmap; rooms sit on odd coordinates
type grid struct {
	w, h  int
	cells []bool
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]bool, w*h)}
	for i := range g.cells {
		g.cells[i] = true
	}
	return g
}

func (g *grid) in(p core.Point) bool { return p.InBounds(g.w, g.h) }

func (g *grid) wall(p core.Point) bool { return !g.in(p) || g.cells[p.Y*g.w+p.X] }

func (g *grid) set(p core.Point, wall bool) { g.cells[p.Y*g.w+p.X] = wall }

// interior reports whether p is a room position that keeps a wall ring to the edge
func (g *grid) interior(p core.Point) bool {
	return p.X > 0 && p.Y > 0 && p.X < g.w-1 && p.Y < g.h-1
}

func (g *grid) carve(start core.Point, rng *rand.Rand) {
	stack := []core.Point{start}
	g.set(start, false)
	var options []core.Point
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		options = options[:0]
		for _, j := range jumps {
			n := cur.Add(j)
			if g.interior(n) && g.wall(n) {
				options = append(options, j)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		j := options[rng.Intn(len(options))]
		g.set(core.Point{X: cur.X + j.X/2, Y: cur.Y + j.Y/2}, false)
		next := cur.Add(j)
		g.set(next, false)
		stack = append(stack, next)
	}
}

func (g *grid) exits(p core.Point) int {
	n := 0
	for _, s := range steps {
		if !g.wall(p.Add(s)) {
			n++
		}
	}
	return n
}

// braid opens one wall out of each selected dead end, skipping openings that would
// leave a 2x2 open block
func (g *grid) braid(probability float64, rng *rand.Rand) {
	var options []core.Point
	for y := 1; y < g.h-1; y += 2 {
		for x := 1; x < g.w-1; x += 2 {
			room := core.Point{X: x, Y: y}
			if g.wall(room) || g.exits(room) != 1 || rng.Float64() >= probability {
				continue
			}
			options = options[:0]
			for _, j := range jumps {
				n := room.Add(j)
				between := core.Point{X: x + j.X/2, Y: y + j.Y/2}
				if g.interior(n) && !g.wall(n) && g.wall(between) && !g.opensBlock(between) {
					options = append(options, between)
				}
			}
			if len(options) > 0 {
				g.set(options[rng.Intn(len(options))], false)
			}
		}
	}
}

// opensBlock reports whether clearing p completes a 2x2 open square
func (g *grid) opensBlock(p core.Point) bool {
	for _, dx := range [2]int{-1, 1} {
		for _, dy := range [2]int{-1, 1} {
			if !g.wall(core.Point{X: p.X + dx, Y: p.Y}) &&
				!g.wall(core.Point{X: p.X, Y: p.Y + dy}) &&
				!g.wall(core.Point{X: p.X + dx, Y: p.Y + dy}) {
				return true
			}
		}
	}
	return false
}

// thin keeps each wall with probability density
func (g *grid) thin(density float64, rng *rand.Rand) {
	for i, w := range g.cells {
		if w && rng.Float64() >= density {
			g.cells[i] = false
		}
	}
}

func (g *grid) shortest(start, goal core.Point) []core.Point {
	prev := make([]int, len(g.cells))
	for i := range prev {
		prev[i] = -1
	}
	idx := func(p core.Point) int { return p.Y*g.w + p.X }
	queue := []core.Point{start}
	prev[idx(start)] = idx(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			var path []core.Point
			for i := idx(cur); ; i = prev[i] {
				path = append(path, core.Point{X: i % g.w, Y: i / g.w})
				if i == idx(start) {
					break
				}
			}
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			return path
		}
		for _, s := range steps {
			n := cur.Add(s)
			if g.wall(n) || prev[idx(n)] != -1 {
				continue
			}
			prev[idx(n)] = idx(cur)
			queue = append(queue, n)
		}
	}
	return nil
}

// lastOdd returns the largest odd index below n-1
func lastOdd(n int) int {
	i := n - 2
	if i%2 == 0 {
		i--
	}
	return i
}
