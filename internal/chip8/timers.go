package chip8

// TimerFrequency is the fixed rate in Hz at which both timers count down.
const TimerFrequency = 60

// Timers are the delay and sound countdown counters.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements both timers, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether a tone should currently play.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}
