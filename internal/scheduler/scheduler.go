// Package scheduler interleaves instruction cycles and timer ticks of a
// machine on a virtual timeline, so that timers count down at their fixed
// rate no matter how many instructions execute per second.
package scheduler

import (
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// DefaultClockSpeed is the default instruction rate in Hz.
const DefaultClockSpeed = 360

// Machine is the part of the interpreter that the scheduler drives.
type Machine interface {
	Step() (chip8.Cycle, error)
	TickTimers()
}

// Frame summarizes the work done by a single Advance or StepOnce call.
type Frame struct {
	Cycles  int  // instruction cycles executed
	Retired int  // cycles that completed an instruction
	Ticks   int  // timer ticks
	Redraw  bool // any cycle modified the framebuffer
}

// Scheduler runs a machine against a virtual clock.
type Scheduler struct {
	machine    Machine
	clockSpeed int
	timerSpeed int

	elapsed time.Duration // virtual time passed
	cycles  int64         // cycles run since the start
	ticks   int64         // timer ticks since the start

	paused   bool
	observer func(chip8.Cycle)
}

// New returns a scheduler running the machine at clockSpeed instructions
// per second.
func New(machine Machine, clockSpeed int) (*Scheduler, error) {
	if clockSpeed <= 0 {
		return nil, fmt.Errorf("invalid clock speed %d", clockSpeed)
	}
	return &Scheduler{
		machine:    machine,
		clockSpeed: clockSpeed,
		timerSpeed: chip8.TimerFrequency,
	}, nil
}

// ClockSpeed returns the instruction rate in Hz.
func (s *Scheduler) ClockSpeed() int {
	return s.clockSpeed
}

// Observe registers a function that is called after every executed cycle.
func (s *Scheduler) Observe(observer func(chip8.Cycle)) {
	s.observer = observer
}

// SetPaused stops or resumes free running. While paused the virtual clock
// does not advance, so neither instructions nor timers run, except through
// StepOnce.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

// Paused returns whether free running is stopped.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Advance moves the virtual clock forward by d and runs all cycles and timer
// ticks that fall due, in timeline order. A timer tick that is due at the
// same instant as a cycle runs first.
func (s *Scheduler) Advance(d time.Duration) (Frame, error) {
	var frame Frame
	if s.paused || d <= 0 {
		return frame, nil
	}

	target := s.elapsed + d
	for {
		nextCycle := s.cycleTime(s.cycles + 1)
		nextTick := s.tickTime(s.ticks + 1)

		if nextTick <= nextCycle && nextTick <= target {
			s.tick(&frame)
			continue
		}
		if nextCycle > target {
			break
		}
		if err := s.cycle(&frame); err != nil {
			s.elapsed = nextCycle
			return frame, err
		}
	}

	s.elapsed = target
	return frame, nil
}

// StepOnce runs exactly one cycle, advancing the virtual clock to the time
// it falls due and running any timer ticks that come before it.
func (s *Scheduler) StepOnce() (Frame, error) {
	var frame Frame
	nextCycle := s.cycleTime(s.cycles + 1)
	for s.tickTime(s.ticks+1) <= nextCycle {
		s.tick(&frame)
	}
	s.elapsed = nextCycle
	err := s.cycle(&frame)
	return frame, err
}

func (s *Scheduler) tick(frame *Frame) {
	s.machine.TickTimers()
	s.ticks++
	frame.Ticks++
}

func (s *Scheduler) cycle(frame *Frame) error {
	cycle, err := s.machine.Step()
	s.cycles++
	if err != nil {
		return fmt.Errorf("running cycle %d: %w", s.cycles, err)
	}

	frame.Cycles++
	if cycle.Retired {
		frame.Retired++
	}
	if cycle.Redraw {
		frame.Redraw = true
	}
	if s.observer != nil {
		s.observer(cycle)
	}
	return nil
}

// cycleTime returns the virtual time at which cycle n falls due. Computing
// it from the counter avoids drift from truncated periods.
func (s *Scheduler) cycleTime(n int64) time.Duration {
	return time.Duration(n * int64(time.Second) / int64(s.clockSpeed))
}

func (s *Scheduler) tickTime(n int64) time.Duration {
	return time.Duration(n * int64(time.Second) / int64(s.timerSpeed))
}
