// Package app provides the main application helpers for the emulator.
package app

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the application name and version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8emu", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the ROM and the machine settings.
func PrintInfo(logger *log.Logger, opts options.Program, size, clockSpeed int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.File),
		log.Int("size", size),
		log.Int("clock", clockSpeed),
		log.String("keys", opts.Keys),
	)
	if opts.Step {
		logger.Info("Step mode enabled, press Space to execute the next instruction")
	}
}

// Tracer returns a cycle observer that logs every executed cycle with the
// register state after it.
func Tracer(logger *log.Logger, machine *chip8.Machine) func(chip8.Cycle) {
	return func(cycle chip8.Cycle) {
		snap := machine.Snapshot()
		logger.Debug(cycle.String(),
			log.Hex("pc", cycle.Address),
			log.Hex("opcode", cycle.Instruction.Opcode),
			log.String("registers", fmt.Sprintf("% X", snap.V[:])),
			log.Hex("i", snap.I),
			log.Int("sp", len(snap.Stack)),
		)
	}
}
