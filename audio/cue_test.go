package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/flowpath/navigation"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			if smp[0] > peak {
				peak = smp[0]
			}
			if -smp[0] > peak {
				peak = -smp[0]
			}
		}
		n += k
		if !ok || k == 0 {
			return n, peak
		}
	}
}

func TestCueForDurations(t *testing.T) {
	n, peak := drain(CueFor(navigation.StatusFound))
	assert.Equal(t, sampleRate.N(70*time.Millisecond)+sampleRate.N(110*time.Millisecond), n)
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 1.0)

	n, _ = drain(CueFor(navigation.StatusNoPath))
	assert.Equal(t, sampleRate.N(150*time.Millisecond), n)

	assert.Nil(t, CueFor(navigation.StatusCancelled))
	assert.Nil(t, CueFor(navigation.StatusRunning))
}

func TestToneAttack(t *testing.T) {
	tone := NewTone(sampleRate, 440, 1)
	buf := make([][2]float64, 4)
	n, ok := tone.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0.0, buf[0][0], "envelope starts silent")
	assert.Equal(t, buf[3][0], buf[3][1], "mono signal on both channels")
	assert.NoError(t, tone.Err())
}

func TestCuesUninitializedNoop(t *testing.T) {
	c := NewCues()
	c.Play(navigation.StatusFound)
	c.Close()
}
