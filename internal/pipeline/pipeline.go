// Package pipeline assembles a ready to run emulator session from the
// program options.
package pipeline

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/app"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/scheduler"
	"github.com/retroenv/chip8emu/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Session is a machine with a loaded ROM and the components driving it.
type Session struct {
	Machine    *chip8.Machine
	Scheduler  *scheduler.Scheduler
	Layout     keymap.Layout
	ClockSpeed int
}

// Pipeline prepares emulator sessions.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new session pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Prepare loads the ROM file named in the options and returns the session
// running it.
func (p *Pipeline) Prepare(opts options.Program, machineOpts ...chip8.Option) (*Session, error) {
	rom, err := p.loader.Load(opts.File)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}
	return p.PrepareWithROM(rom, opts, machineOpts...)
}

// PrepareWithROM returns a session running a ROM that is already in memory.
func (p *Pipeline) PrepareWithROM(rom []byte, opts options.Program, machineOpts ...chip8.Option) (*Session, error) {
	clockSpeed, err := config.ClockSpeed(opts.Speed, opts.Clock)
	if err != nil {
		return nil, fmt.Errorf("resolving clock speed: %w", err)
	}

	layout, err := keymap.Lookup(opts.Keys)
	if err != nil {
		return nil, fmt.Errorf("selecting key layout: %w", err)
	}

	machine := chip8.New(machineOpts...)
	if err := machine.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading ROM into memory: %w", err)
	}

	sched, err := scheduler.New(machine, clockSpeed)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	if opts.Debug {
		sched.Observe(app.Tracer(p.logger, machine))
	}

	app.PrintInfo(p.logger, opts, len(rom), clockSpeed)

	return &Session{
		Machine:    machine,
		Scheduler:  sched,
		Layout:     layout,
		ClockSpeed: clockSpeed,
	}, nil
}

// Disassemble loads the ROM file named in the options and writes its
// assembly listing.
func (p *Pipeline) Disassemble(opts options.Program, output io.Writer) error {
	rom, err := p.loader.Load(opts.File)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	w := writer.New(output, writer.Options{
		HexComments:    true,
		OffsetComments: true,
	})
	if err := w.Write(rom); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}
