// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
// Trailing "debug" and "debug step" words after the ROM file are accepted as
// an alternative to the -debug and -step flags.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if err != nil {
		return opts, &UsageError{flags: flags}
	}
	if opts.Version {
		return opts, nil
	}

	args := flags.Args()
	if len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := parsePositional(args, &opts); err != nil {
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8emu [options] <rom file> [debug [step]]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// parsePositional assigns the ROM file and the optional debug toggles.
func parsePositional(args []string, opts *options.Program) error {
	opts.File = args[0]

	toggles := args[1:]
	switch {
	case len(toggles) == 0:
	case len(toggles) <= 2 && toggles[0] == "debug":
		opts.Debug = true
		if len(toggles) == 2 {
			if toggles[1] != "step" {
				return &UsageError{msg: fmt.Sprintf("unexpected argument %s, expected step", toggles[1])}
			}
			opts.Step = true
		}
	default:
		for _, arg := range toggles {
			if strings.HasPrefix(arg, "-") {
				return &UsageError{
					msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
				}
			}
		}
		return &UsageError{msg: fmt.Sprintf("unexpected arguments after ROM file: %s", strings.Join(toggles, " "))}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Keys = strings.ToLower(opts.Keys)
	if _, err := keymap.Lookup(opts.Keys); err != nil {
		return err
	}

	if _, err := config.ClockSpeed(opts.Speed, opts.Clock); err != nil {
		return err
	}

	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "log the machine state after every cycle")
	flags.BoolVar(&opts.Step, "step", false, "require an explicit key press between cycles (Space)")
	flags.BoolVar(&opts.Headless, "headless", false, "run in the terminal instead of a window")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print an assembly listing of the ROM and exit")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print version information and exit")
	flags.StringVar(&opts.Speed, "speed", "1", "speed preset (0.5/1/2)")
	flags.IntVar(&opts.Clock, "clock", 0, "instructions per second, overrides -speed")
	flags.StringVar(&opts.Keys, "keys", keymap.Cosmac, "key layout (cosmac/hex)")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor")
	flags.IntVar(&opts.Frames, "frames", 0, "stop the headless driver after this many frames, 0 runs until interrupted")
}
