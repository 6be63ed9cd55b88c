// Package main implements the main entry point for the CHIP-8 emulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/app"
	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/pipeline"
	"github.com/retroenv/chip8emu/internal/terminal"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("chip8emu version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if opts.Disasm {
		if err := pipeline.New(logger).Disassemble(opts, os.Stdout); err != nil {
			logger.Error("Disassembling failed", log.Err(err))
			os.Exit(1)
		}
		return
	}

	app.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

// run prepares the session and hands it to the window or terminal driver.
func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	session, err := pipeline.New(logger).Prepare(opts)
	if err != nil {
		return err
	}

	if opts.Headless {
		runner := terminal.New(logger, session.Machine, session.Scheduler, session.Layout, terminal.Config{
			Step:   opts.Step,
			Frames: opts.Frames,
			Render: !opts.Debug,
		})
		return runner.Run(ctx)
	}

	window := frontend.NewWindow(ctx, logger, session.Machine, session.Scheduler, session.Layout, frontend.Config{
		Scale: opts.Scale,
		Step:  opts.Step,
		Sound: true,
	})
	return window.Run()
}
