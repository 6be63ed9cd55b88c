// Package options contains the program options.
package options

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"CHIP-8 ROM file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Debug    bool `flag:"debug" usage:"log the machine state after every cycle"`
	Step     bool `flag:"step" usage:"require an explicit key press between cycles"`
	Headless bool `flag:"headless" usage:"run in the terminal instead of a window"`
	Disasm   bool `flag:"disasm" usage:"print an assembly listing of the ROM and exit"`
	Quiet    bool `flag:"q" usage:"quiet mode"`
	Version  bool `flag:"version" usage:"print version information and exit"`
}

// Emulation contains machine timing and input options.
type Emulation struct {
	Speed  string `flag:"speed" usage:"speed preset: 0.5, 1, 2" default:"1"`
	Clock  int    `flag:"clock" usage:"instructions per second, overrides -speed"`
	Keys   string `flag:"keys" usage:"key layout: cosmac, hex" default:"cosmac"`
	Scale  int    `flag:"scale" usage:"window scale factor" default:"10"`
	Frames int    `flag:"frames" usage:"stop the headless driver after this many frames (0: run until interrupted)"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Flags
	Emulation
}
