package app

import (
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef0123", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Positional: options.Positional{File: "pong.ch8"},
		Flags:      options.Flags{Step: true},
		Emulation:  options.Emulation{Keys: "cosmac"},
	}

	PrintInfo(logger, opts, 246, 360)
}

func TestTracer(t *testing.T) {
	logger := log.NewTestLogger(t)
	machine := chip8.New()
	assert.NoError(t, machine.LoadROM([]byte{0x6A, 0x02, 0xA1, 0x23}))

	var traced []chip8.Cycle
	trace := Tracer(logger, machine)
	observer := func(cycle chip8.Cycle) {
		traced = append(traced, cycle)
		trace(cycle)
	}

	for range 2 {
		cycle, err := machine.Step()
		assert.NoError(t, err)
		observer(cycle)
	}

	assert.Len(t, traced, 2)
	assert.Contains(t, traced[0].String(), "[PC:0x200] [RAW:0x6A02]")
	assert.Contains(t, traced[0].String(), "VA=$02")
	assert.Equal(t, uint16(0x202), traced[1].Address)
}
