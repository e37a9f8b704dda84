package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Search Outcome Cues
const (
	// Found: rising two-note chime
	CueFoundLowFreq      = 660.0
	CueFoundLowDuration  = 70 * time.Millisecond
	CueFoundHighFreq     = 990.0
	CueFoundHighDuration = 110 * time.Millisecond

	// No path: low buzz with upper harmonics
	CueNoPathFreq      = 120.0
	CueNoPathHarmonics = 2
	CueNoPathDuration  = 150 * time.Millisecond
)
