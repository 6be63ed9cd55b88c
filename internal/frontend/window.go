// Package frontend runs a machine in a desktop window, with the framebuffer
// scaled to the window, keyboard input mapped to the keypad and a beep
// played while the sound timer runs.
package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

const (
	windowTitle = "chip8emu"
	ticksPerSec = 60

	// stepKey advances a single cycle in step mode.
	stepKey = ebiten.KeySpace
)

var (
	colorOn  = [4]byte{0xE0, 0xE0, 0xE0, 0xFF}
	colorOff = [4]byte{0x10, 0x10, 0x10, 0xFF}
)

// Config contains the window settings.
type Config struct {
	Scale int
	Step  bool // advance only on stepKey presses
	Sound bool
}

// Window implements ebiten.Game for a running machine.
type Window struct {
	ctx       context.Context
	logger    *log.Logger
	machine   *chip8.Machine
	scheduler *scheduler.Scheduler
	layout    keymap.Layout
	audio     *Audio
	cfg       Config

	keys   []ebiten.Key // host keys mapped by the layout
	pixels []byte       // RGBA framebuffer in display resolution
	err    error        // fatal machine error that ended the run
}

// NewWindow returns a window driver for the machine.
func NewWindow(ctx context.Context, logger *log.Logger, machine *chip8.Machine,
	sched *scheduler.Scheduler, layout keymap.Layout, cfg Config) *Window {

	w := &Window{
		ctx:       ctx,
		logger:    logger,
		machine:   machine,
		scheduler: sched,
		layout:    layout,
		cfg:       cfg,
		pixels:    make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}

	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		if _, ok := layout.Key(key.String()); ok {
			w.keys = append(w.keys, key)
		}
	}
	w.renderPixels()
	return w
}

// Run opens the window and blocks until it is closed, the context is
// cancelled or the machine halts with a fatal error.
func (w *Window) Run() error {
	if w.cfg.Sound {
		audio, err := NewAudio()
		if err != nil {
			w.logger.Warn("Audio output unavailable", log.Err(err))
		} else {
			w.audio = audio
			defer func() { _ = audio.Close() }()
		}
	}

	ebiten.SetWindowSize(chip8.DisplayWidth*w.cfg.Scale, chip8.DisplayHeight*w.cfg.Scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSec)
	w.scheduler.SetPaused(w.cfg.Step)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Update is called by ebiten at a fixed tick rate.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, hostKey := range w.keys {
		key, _ := w.layout.Key(hostKey.String())
		w.machine.SetKey(key, ebiten.IsKeyPressed(hostKey))
	}

	var err error
	if w.cfg.Step {
		if inpututil.IsKeyJustPressed(stepKey) {
			_, err = w.scheduler.StepOnce()
		}
	} else {
		_, err = w.scheduler.Advance(time.Second / ticksPerSec)
	}
	if err != nil {
		w.err = err
		return ebiten.Termination
	}

	if w.audio != nil {
		w.audio.SetActive(w.machine.SoundActive())
	}
	return nil
}

// Draw blits the framebuffer to the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.machine.ConsumeRedraw() {
		w.renderPixels()
	}
	screen.WritePixels(w.pixels)
}

// Layout keeps the logical screen at display resolution, ebiten scales it
// to the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}

func (w *Window) renderPixels() {
	display := w.machine.Display()
	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			c := colorOff
			if display.Pixel(x, y) {
				c = colorOn
			}
			copy(w.pixels[(y*chip8.DisplayWidth+x)*4:], c[:])
		}
	}
}
