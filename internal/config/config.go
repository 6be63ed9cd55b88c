// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strconv"

	"github.com/retroenv/chip8emu/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

// speedPresets maps the speed option to instructions per second.
var speedPresets = map[string]int{
	"0.5": scheduler.DefaultClockSpeed / 2,
	"1":   scheduler.DefaultClockSpeed,
	"2":   scheduler.DefaultClockSpeed * 2,
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ClockSpeed resolves the instruction rate from the speed preset and the
// explicit clock option, which takes precedence when set.
func ClockSpeed(speed string, clock int) (int, error) {
	if clock < 0 {
		return 0, fmt.Errorf("invalid clock speed %d", clock)
	}
	if clock > 0 {
		return clock, nil
	}
	if speed == "" {
		return scheduler.DefaultClockSpeed, nil
	}

	if hz, ok := speedPresets[speed]; ok {
		return hz, nil
	}
	// accept equivalent spellings like 2.0 or .5
	if f, err := strconv.ParseFloat(speed, 64); err == nil {
		if hz, ok := speedPresets[strconv.FormatFloat(f, 'f', -1, 64)]; ok {
			return hz, nil
		}
	}
	return 0, fmt.Errorf("unsupported speed %s. Valid options: 0.5, 1, 2", speed)
}
