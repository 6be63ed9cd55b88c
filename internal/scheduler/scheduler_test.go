package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

// fakeMachine records the order of steps and ticks.
type fakeMachine struct {
	events []string
	steps  int
	ticks  int
	failAt int
}

var errFake = errors.New("fake failure")

func (f *fakeMachine) Step() (chip8.Cycle, error) {
	f.steps++
	f.events = append(f.events, "step")
	if f.failAt > 0 && f.steps == f.failAt {
		return chip8.Cycle{}, errFake
	}
	return chip8.Cycle{Retired: true}, nil
}

func (f *fakeMachine) TickTimers() {
	f.ticks++
	f.events = append(f.events, "tick")
}

func TestNew_InvalidClock(t *testing.T) {
	_, err := New(&fakeMachine{}, 0)
	assert.Error(t, err)
}

func TestAdvance_TimerRateIndependentOfClock(t *testing.T) {
	for _, clock := range []int{180, 360, 720, 1000, 5000} {
		machine := &fakeMachine{}
		s, err := New(machine, clock)
		assert.NoError(t, err)

		var cycles, ticks int
		for i := 0; i < 10; i++ {
			frame, err := s.Advance(100 * time.Millisecond)
			assert.NoError(t, err)
			cycles += frame.Cycles
			ticks += frame.Ticks
		}

		assert.Equal(t, 60, ticks)
		assert.Equal(t, clock, cycles)
		assert.Equal(t, clock, machine.steps)
	}
}

func TestAdvance_Interleaving(t *testing.T) {
	machine := &fakeMachine{}
	s, err := New(machine, 120)
	assert.NoError(t, err)

	_, err = s.Advance(time.Second / 30)
	assert.NoError(t, err)
	// ticks fall due together with every second cycle and run first
	assert.Equal(t, []string{"step", "tick", "step", "step", "tick", "step"}, machine.events)
}

func TestAdvance_Paused(t *testing.T) {
	machine := &fakeMachine{}
	s, err := New(machine, 360)
	assert.NoError(t, err)

	s.SetPaused(true)
	assert.True(t, s.Paused())
	frame, err := s.Advance(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, Frame{}, frame)
	assert.Equal(t, 0, machine.steps)
	assert.Equal(t, 0, machine.ticks)
}

func TestStepOnce(t *testing.T) {
	machine := &fakeMachine{}
	s, err := New(machine, 120)
	assert.NoError(t, err)
	s.SetPaused(true)

	var ticks int
	for i := 0; i < 120; i++ {
		frame, err := s.StepOnce()
		assert.NoError(t, err)
		assert.Equal(t, 1, frame.Cycles)
		ticks += frame.Ticks
	}
	assert.Equal(t, 120, machine.steps)
	assert.Equal(t, 60, ticks)
}

func TestAdvance_StopsOnError(t *testing.T) {
	machine := &fakeMachine{failAt: 3}
	s, err := New(machine, 360)
	assert.NoError(t, err)

	var observed int
	s.Observe(func(chip8.Cycle) { observed++ })

	frame, err := s.Advance(time.Second)
	assert.True(t, errors.Is(err, errFake))
	assert.Equal(t, 2, frame.Cycles)
	assert.Equal(t, 2, observed)
	assert.Equal(t, 3, machine.steps)
}

func TestAdvance_RealMachineKeyWait(t *testing.T) {
	m := chip8.New()
	assert.NoError(t, m.LoadROM([]byte{0xF0, 0x0A, 0x12, 0x02}))
	s, err := New(m, 360)
	assert.NoError(t, err)

	frame, err := s.Advance(100 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 36, frame.Cycles)
	assert.Equal(t, 0, frame.Retired)
	assert.Equal(t, 6, frame.Ticks)

	m.SetKey(0xA, true)
	frame, err = s.Advance(100 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 36, frame.Retired)
	assert.Equal(t, uint16(0x202), m.Snapshot().PC)
	assert.Equal(t, byte(0xA), m.Snapshot().V[0])
}
