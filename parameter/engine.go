package parameter

import "time"

// Sandbox Loop Timing
const (
	// SandboxTickInterval is the view update interval (clock tick)
	SandboxTickInterval = 50 * time.Millisecond

	// SandboxAgentSpeed is how many segments per second the agent traverses
	SandboxAgentSpeed = 4.0

	// SandboxReloadsPerSecond bounds how often a changed scenario file is re-applied
	SandboxReloadsPerSecond = 2.0

	// SandboxEventBuffer is the capacity of the terminal event channel
	SandboxEventBuffer = 100
)
