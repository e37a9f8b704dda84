package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/flowpath/navigation"
	"github.com/lixenwraith/flowpath/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cues plays short audible signals for search outcomes
// All methods are no-ops until Initialize succeeds
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewCues creates an idle cue player
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences pending cues and releases the speaker
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.mixer.Clear()
	speaker.Close()
	c.initialized = false
}

// Play queues the cue for a finished search status
func (c *Cues) Play(status navigation.Status) {
	s := CueFor(status)
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// CueFor returns the finite streamer for a status, nil for statuses without a cue
// Found is a rising two-note chime, no path a low buzz
func CueFor(status navigation.Status) beep.Streamer {
	switch status {
	case navigation.StatusFound:
		return beep.Seq(
			beep.Take(sampleRate.N(parameter.CueFoundLowDuration), NewTone(sampleRate, parameter.CueFoundLowFreq, 0)),
			beep.Take(sampleRate.N(parameter.CueFoundHighDuration), NewTone(sampleRate, parameter.CueFoundHighFreq, 0)),
		)
	case navigation.StatusNoPath:
		return beep.Take(sampleRate.N(parameter.CueNoPathDuration), NewTone(sampleRate, parameter.CueNoPathFreq, parameter.CueNoPathHarmonics))
	default:
		return nil
	}
}

// Tone is a sine voice with optional upper harmonics and a short attack
type Tone struct {
	sr        beep.SampleRate
	freq      float64
	harmonics int
	pos       int
}

// NewTone creates an endless tone; wrap it in beep.Take to bound it
func NewTone(sr beep.SampleRate, freq float64, harmonics int) *Tone {
	return &Tone{sr: sr, freq: freq, harmonics: harmonics}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		amp := 0.15
		for h := 2; h <= g.harmonics+1; h++ {
			sample += amp * math.Sin(2*math.Pi*g.freq*float64(h)*t)
			amp /= 2
		}

		// 20ms attack
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Tone) Err() error {
	return nil
}
