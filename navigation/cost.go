package navigation

import (
	"math"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/parameter"
	"github.com/lixenwraith/flowpath/vmath"
)

// HeuristicMode selects the distance metric of the search heuristic
type HeuristicMode uint8

const (
	HeuristicManhattan HeuristicMode = iota
	HeuristicEuclidean
)

func (m HeuristicMode) String() string {
	if m == HeuristicEuclidean {
		return "euclidean"
	}
	return "manhattan"
}

// ParseHeuristic maps a config string to a mode
func ParseHeuristic(s string) (HeuristicMode, error) {
	switch s {
	case "", "manhattan":
		return HeuristicManhattan, nil
	case "euclidean":
		return HeuristicEuclidean, nil
	}
	return 0, configErrorf("heuristic", "unknown heuristic %q", s)
}

// Cost is the flow-weighted step cost between cell centres
// Moving with the flow costs 0.7× the distance, against it 1.5×, linear in between
func Cost(field *FlowField, from, to core.Point) float64 {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	base := math.Hypot(dx, dy)
	align := field.Alignment(from, vmath.FromInts(to.X-from.X, to.Y-from.Y))
	return base * flowMultiplier(align)
}

func flowMultiplier(align float64) float64 {
	return vmath.Lerp(parameter.NavCostAgainstFlow, parameter.NavCostWithFlow, (align+1)/2)
}

// Heuristic estimates remaining cost from p, shrunk when the flow at p points at the goal
// and inflated when it points away. It can overestimate, so returned paths are not
// guaranteed shortest; that flow-seeking bias is intended
func Heuristic(field *FlowField, p, goal core.Point, mode HeuristicMode) float64 {
	dist := distance(p, goal, mode)
	if dist == 0 {
		return 0
	}
	align := field.Alignment(p, vmath.FromInts(goal.X-p.X, goal.Y-p.Y))
	return dist * (1 - parameter.NavHeuristicFlowBias*align)
}

// StrictHeuristic never overestimates: every step costs at least the with-flow multiplier
func StrictHeuristic(p, goal core.Point, mode HeuristicMode) float64 {
	return distance(p, goal, mode) * parameter.NavCostWithFlow
}

func distance(p, goal core.Point, mode HeuristicMode) float64 {
	if mode == HeuristicEuclidean {
		return math.Hypot(float64(goal.X-p.X), float64(goal.Y-p.Y))
	}
	return float64(p.Manhattan(goal))
}

// PathCost sums Cost over consecutive steps of path
func PathCost(field *FlowField, path []core.Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Cost(field, path[i-1], path[i])
	}
	return total
}
