// Package terminal runs a machine without a window, rendering the
// framebuffer as text and reading keys from the terminal.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"
	"unicode"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	frameRate = 60

	// keyHoldFrames is how long a typed key stays pressed, terminals only
	// report presses.
	keyHoldFrames = 6

	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Config contains the terminal driver settings.
type Config struct {
	Step   bool // advance one cycle per step key press
	Frames int  // stop after this many frames, 0 runs until cancelled
	Render bool // draw the framebuffer
}

// Runner drives a machine from the terminal.
type Runner struct {
	logger    *log.Logger
	machine   *chip8.Machine
	scheduler *scheduler.Scheduler
	layout    keymap.Layout
	cfg       Config

	in  io.Reader
	out io.Writer

	held [chip8.KeyCount]int // remaining frames a typed key stays pressed
}

// New returns a terminal driver reading from stdin and writing to stdout.
func New(logger *log.Logger, machine *chip8.Machine, sched *scheduler.Scheduler,
	layout keymap.Layout, cfg Config) *Runner {

	return &Runner{
		logger:    logger,
		machine:   machine,
		scheduler: sched,
		layout:    layout,
		cfg:       cfg,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Run drives the machine until the context is cancelled, the frame limit is
// reached, the user quits or the machine halts with a fatal error.
func (r *Runner) Run(ctx context.Context) error {
	if restore := r.enterRawMode(); restore != nil {
		defer restore()
	}

	keys := make(chan byte, 16)
	go readKeys(r.in, keys)

	if r.cfg.Render {
		if _, err := io.WriteString(r.out, clearScreen); err != nil {
			return fmt.Errorf("writing to terminal: %w", err)
		}
	}

	r.scheduler.SetPaused(r.cfg.Step)
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for frames := 0; r.cfg.Frames == 0 || frames < r.cfg.Frames; frames++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		step, quit := r.processKeys(keys)
		if quit {
			return nil
		}

		if err := r.runFrame(step); err != nil {
			return err
		}
	}
	return nil
}

// runFrame advances the machine by one frame, or by the requested single
// steps in step mode, and redraws the display when it changed.
func (r *Runner) runFrame(steps int) error {
	if r.cfg.Step {
		for i := 0; i < steps; i++ {
			if _, err := r.scheduler.StepOnce(); err != nil {
				return err
			}
		}
	} else {
		if _, err := r.scheduler.Advance(time.Second / frameRate); err != nil {
			return err
		}
	}

	if r.cfg.Render && r.machine.ConsumeRedraw() {
		if _, err := io.WriteString(r.out, cursorHome); err != nil {
			return fmt.Errorf("writing to terminal: %w", err)
		}
		if err := Render(r.out, r.machine.Display()); err != nil {
			return fmt.Errorf("writing to terminal: %w", err)
		}
	}
	return nil
}

// processKeys applies typed keys to the keypad, releases keys whose hold
// time ran out and returns the number of requested steps.
func (r *Runner) processKeys(keys <-chan byte) (steps int, quit bool) {
	for key, frames := range r.held {
		if frames == 0 {
			continue
		}
		r.held[key]--
		if r.held[key] == 0 {
			r.machine.SetKey(byte(key), false)
		}
	}

	for {
		select {
		case b, ok := <-keys:
			if !ok {
				return steps, false
			}
			switch {
			case b == keyCtrlC || b == keyEscape:
				return steps, true
			case r.cfg.Step && isStepKey(b):
				steps++
			default:
				if key, ok := r.layout.Key(hostKeyName(rune(b))); ok {
					r.machine.SetKey(key, true)
					r.held[key] = keyHoldFrames
				}
			}
		default:
			return steps, false
		}
	}
}

// isStepKey reports whether the typed byte requests a single step. The letter
// n is not used by any key layout.
func isStepKey(b byte) bool {
	switch b {
	case ' ', '\r', '\n', 'n', 'N':
		return true
	default:
		return false
	}
}

// enterRawMode switches an interactive stdin to raw mode so that single key
// presses arrive without Enter. It returns the function restoring the
// previous mode or nil if nothing was changed.
func (r *Runner) enterRawMode() func() {
	file, ok := r.in.(*os.File)
	if !ok {
		return nil
	}
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	if width, height, err := term.GetSize(fd); err == nil && r.cfg.Render &&
		(width < chip8.DisplayWidth || height < chip8.DisplayHeight/2) {
		r.logger.Warn("Terminal is smaller than the display",
			log.Int("columns", width), log.Int("rows", height))
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		r.logger.Warn("Could not switch terminal to raw mode", log.Err(err))
		return nil
	}
	return func() {
		_ = term.Restore(fd, state)
	}
}

// readKeys forwards bytes read from the input until it fails.
func readKeys(in io.Reader, keys chan<- byte) {
	defer close(keys)
	reader := bufio.NewReader(in)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		keys <- b
	}
}

// hostKeyName converts a typed character to the host key name used by the
// key layouts.
func hostKeyName(r rune) string {
	switch {
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	case unicode.IsLetter(r) && r < unicode.MaxASCII:
		return string(unicode.ToUpper(r))
	default:
		return ""
	}
}
