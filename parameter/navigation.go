package parameter

// Navigation - Influence Field
const (
	// NavStartStrength is the repulsion strength of the path start marker
	NavStartStrength = 1.0

	// NavTargetStrength is the attraction strength of the path target marker
	NavTargetStrength = 2.0

	// NavAdvisoryRadius is the default radius for proximity (non-graph) blocking checks
	NavAdvisoryRadius = 0.5
)

// Navigation - Grid
const (
	// NavCellSize is the rendered edge length of one cell in world units
	NavCellSize = 1.0

	// NavCellPadding is the gap between rendered cells; spacing = size + padding
	NavCellPadding = 0.1
)

// Navigation - Search
const (
	// NavCostWithFlow is the step cost multiplier when moving exactly along the flow
	NavCostWithFlow = 0.7

	// NavCostAgainstFlow is the step cost multiplier when moving exactly against the flow
	NavCostAgainstFlow = 1.5

	// NavHeuristicFlowBias scales how strongly flow alignment shrinks or inflates the heuristic
	NavHeuristicFlowBias = 0.3

	// NavIterationCap bounds node expansions per search before reporting no path
	NavIterationCap = 10000

	// NavStepBudget is the default number of expansions per cooperative step
	NavStepBudget = 10
)

// Navigation - Smoothing
const (
	// NavDiagonalControlInset is the control point offset (in cells) for diagonal entry/exit curves
	NavDiagonalControlInset = 0.2
)
