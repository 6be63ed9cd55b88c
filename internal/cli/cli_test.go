package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		file  string
		debug bool
		step  bool
		keys  string
		clock int
	}{
		{
			name: "default flags",
			args: []string{"prog", "game.ch8"},
			file: "game.ch8",
			keys: "cosmac",
		},
		{
			name:  "debug flags",
			args:  []string{"prog", "-debug", "-step", "game.ch8"},
			file:  "game.ch8",
			debug: true,
			step:  true,
			keys:  "cosmac",
		},
		{
			name:  "debug word",
			args:  []string{"prog", "game.ch8", "debug"},
			file:  "game.ch8",
			debug: true,
			keys:  "cosmac",
		},
		{
			name:  "debug step words",
			args:  []string{"prog", "game.ch8", "debug", "step"},
			file:  "game.ch8",
			debug: true,
			step:  true,
			keys:  "cosmac",
		},
		{
			name:  "layout and clock",
			args:  []string{"prog", "-keys", "HEX", "-clock", "700", "game.ch8"},
			file:  "game.ch8",
			keys:  "hex",
			clock: 700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.file, got.File)
			assert.Equal(t, tt.debug, got.Debug)
			assert.Equal(t, tt.step, got.Step)
			assert.Equal(t, tt.keys, got.Keys)
			assert.Equal(t, tt.clock, got.Clock)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no rom", []string{"prog"}, true},
		{"flag after rom", []string{"prog", "game.ch8", "-debug", "x"}, true},
		{"unknown word after debug", []string{"prog", "game.ch8", "debug", "run"}, true},
		{"unknown layout", []string{"prog", "-keys", "dvorak", "game.ch8"}, false},
		{"unknown speed", []string{"prog", "-speed", "3", "game.ch8"}, false},
		{"invalid scale", []string{"prog", "-scale", "0", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_Version(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-version"}
	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.Version)
}

func TestParseFlags_Disasm(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-disasm", "game.ch8"}
	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.Disasm)
	assert.Equal(t, "game.ch8", opts.File)
}
