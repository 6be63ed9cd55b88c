// Package tone generates the square wave beep that plays while the sound
// timer of the machine is running.
package tone

import (
	"sync/atomic"
)

// Output format of the generated PCM stream.
const (
	SampleRate     = 44100
	ChannelCount   = 1
	BytesPerSample = 2 // signed 16 bit little endian

	// DefaultFrequency is the pitch of the beep in Hz.
	DefaultFrequency = 440

	amplitude = 0x1800
)

// Tone is an io.Reader producing an endless mono PCM stream, a square wave
// while active and silence otherwise. Read is called from the audio thread,
// SetActive from the emulation loop.
type Tone struct {
	period int // wave period in samples
	active atomic.Bool
	phase  int // position within the current wave period in samples
}

// New returns an inactive tone generator. Non positive values fall back to
// SampleRate and DefaultFrequency.
func New(sampleRate, frequency int) *Tone {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return &Tone{
		period: max(sampleRate/frequency, 2),
	}
}

// SetActive switches the beep on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the beep is on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with whole samples.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / BytesPerSample * BytesPerSample
	period := t.period
	active := t.active.Load()

	for i := 0; i < n; i += BytesPerSample {
		var sample int16
		if active {
			sample = amplitude
			if t.phase >= period/2 {
				sample = -amplitude
			}
		}
		p[i] = byte(sample)
		p[i+1] = byte(uint16(sample) >> 8)

		t.phase++
		if t.phase >= period {
			t.phase = 0
		}
	}
	return n, nil
}
