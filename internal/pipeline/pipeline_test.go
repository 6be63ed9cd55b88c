package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// loopROM loads a value into VA and jumps to itself.
var loopROM = []byte{0x6A, 0x07, 0x12, 0x02}

func defaultOptions() options.Program {
	return options.Program{
		Flags:     options.Flags{Quiet: true},
		Emulation: options.Emulation{Speed: "1", Keys: keymap.Cosmac, Scale: 10},
	}
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
}

func TestPrepare(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := defaultOptions()
	opts.File = createTempFile(t, loopROM)

	session, err := p.Prepare(opts)
	assert.NoError(t, err)
	assert.Equal(t, 360, session.ClockSpeed)
	assert.Equal(t, keymap.Cosmac, session.Layout.Name())

	frame, err := session.Scheduler.Advance(100 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 36, frame.Cycles)
	assert.Equal(t, byte(0x07), session.Machine.Snapshot().V[0xA])
}

func TestPrepare_MissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := defaultOptions()
	opts.File = filepath.Join(t.TempDir(), "missing.ch8")

	_, err := p.Prepare(opts)
	assert.ErrorContains(t, err, "loading ROM")
}

func TestPrepareWithROM(t *testing.T) {
	tests := []struct {
		name       string
		rom        []byte
		modify     func(*options.Program)
		wantClock  int
		errContain string
	}{
		{
			name:      "default speed",
			rom:       loopROM,
			wantClock: 360,
		},
		{
			name:      "double speed",
			rom:       loopROM,
			modify:    func(o *options.Program) { o.Speed = "2" },
			wantClock: 720,
		},
		{
			name:      "explicit clock",
			rom:       loopROM,
			modify:    func(o *options.Program) { o.Clock = 500 },
			wantClock: 500,
		},
		{
			name:       "invalid speed",
			rom:        loopROM,
			modify:     func(o *options.Program) { o.Speed = "3" },
			errContain: "resolving clock speed",
		},
		{
			name:       "invalid layout",
			rom:        loopROM,
			modify:     func(o *options.Program) { o.Keys = "dvorak" },
			errContain: "selecting key layout",
		},
		{
			name:       "rom too large",
			rom:        make([]byte, chip8.MaxRomSize+1),
			errContain: "loading ROM into memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			opts := defaultOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}

			session, err := p.PrepareWithROM(tt.rom, opts)
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantClock, session.ClockSpeed)
			assert.Equal(t, tt.wantClock, session.Scheduler.ClockSpeed())
		})
	}
}

func TestPrepareWithROM_RomTooLargeIsWrapped(t *testing.T) {
	p := New(log.NewTestLogger(t))

	_, err := p.PrepareWithROM(make([]byte, chip8.MaxRomSize+1), defaultOptions())
	assert.True(t, errors.Is(err, chip8.ErrRomTooLarge))
}

func TestPrepareWithROM_DebugTrace(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := defaultOptions()
	opts.Debug = true

	session, err := p.PrepareWithROM(loopROM, opts, chip8.WithRandom(func() byte { return 0 }))
	assert.NoError(t, err)

	frame, err := session.Scheduler.StepOnce()
	assert.NoError(t, err)
	assert.Equal(t, 1, frame.Cycles)
}

func TestDisassemble(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := defaultOptions()
	opts.File = createTempFile(t, loopROM)

	var buf bytes.Buffer
	assert.NoError(t, p.Disassemble(opts, &buf))
	assert.Contains(t, buf.String(), "_label_0202:")
	assert.Contains(t, buf.String(), "VA, $07")
}

func TestDisassemble_MissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := defaultOptions()
	opts.File = filepath.Join(t.TempDir(), "missing.ch8")

	err := p.Disassemble(opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading ROM")
}
