package haptics

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/go-drift/wheel/pkg/errors"
)

const (
	clickSampleRate = beep.SampleRate(44100)
	clickFrequency  = 2200.0
)

// Click renders each pulse as a short decaying tone on the default audio
// device, for hosts without a vibration motor.
type Click struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewClick returns a click output. Call Init before the first pulse.
func NewClick(volume float64) *Click {
	return &Click{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker.
func (c *Click) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(clickSampleRate, clickSampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences pending clicks.
func (c *Click) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Pulse implements Output.
func (c *Click) Pulse(d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return errors.ErrHapticUnavailable
	}
	tone := beep.Take(clickSampleRate.N(d), newClickTone(clickSampleRate, d))
	speaker.Lock()
	c.mixer.Add(&effects.Gain{Streamer: tone, Gain: c.volume - 1})
	speaker.Unlock()
	return nil
}

// clickTone is a sine burst with an exponential decay envelope.
type clickTone struct {
	rate  beep.SampleRate
	pos   int
	total int
}

func newClickTone(rate beep.SampleRate, d time.Duration) *clickTone {
	return &clickTone{rate: rate, total: rate.N(d)}
}

func (t *clickTone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		sec := float64(t.pos) / float64(t.rate)
		env := math.Exp(-5 * float64(t.pos) / float64(t.total))
		v := 0.4 * env * math.Sin(2*math.Pi*clickFrequency*sec)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *clickTone) Err() error { return nil }
