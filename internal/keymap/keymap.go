// Package keymap translates host keyboard keys to the 16 keys of the
// CHIP-8 hexadecimal keypad.
//
// Host keys are identified by name, using the names of the windowing
// library: "Digit0"-"Digit9" for the number row and "A"-"Z" for letters.
package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Supported layout names.
const (
	// Cosmac maps the keypad of the COSMAC VIP onto the left block of a
	// QWERTY keyboard:
	//
	//	1 2 3 C      1 2 3 4
	//	4 5 6 D  ->  Q W E R
	//	7 8 9 E      A S D F
	//	A 0 B F      Z X C V
	Cosmac = "cosmac"

	// Hex maps every keypad key to the host key with the same hex digit.
	Hex = "hex"
)

// Layout maps host key names to keypad keys.
type Layout struct {
	name string
	keys map[string]byte
}

var layouts = map[string]Layout{
	Cosmac: {
		name: Cosmac,
		keys: map[string]byte{
			"Digit1": 0x1, "Digit2": 0x2, "Digit3": 0x3, "Digit4": 0xC,
			"Q": 0x4, "W": 0x5, "E": 0x6, "R": 0xD,
			"A": 0x7, "S": 0x8, "D": 0x9, "F": 0xE,
			"Z": 0xA, "X": 0x0, "C": 0xB, "V": 0xF,
		},
	},
	Hex: {
		name: Hex,
		keys: map[string]byte{
			"Digit0": 0x0, "Digit1": 0x1, "Digit2": 0x2, "Digit3": 0x3,
			"Digit4": 0x4, "Digit5": 0x5, "Digit6": 0x6, "Digit7": 0x7,
			"Digit8": 0x8, "Digit9": 0x9, "A": 0xA, "B": 0xB,
			"C": 0xC, "D": 0xD, "E": 0xE, "F": 0xF,
		},
	},
}

// Lookup returns the layout with the given name.
func Lookup(name string) (Layout, error) {
	layout, ok := layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unsupported key layout: %s. Valid options: %s",
			name, strings.Join(Names(), ", "))
	}
	return layout, nil
}

// Names returns the sorted names of all layouts.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the layout name.
func (l Layout) Name() string {
	return l.name
}

// Key returns the keypad key for a host key name.
func (l Layout) Key(hostKey string) (byte, bool) {
	key, ok := l.keys[hostKey]
	return key, ok
}

// HostKeys returns the sorted names of all mapped host keys.
func (l Layout) HostKeys() []string {
	names := make([]string, 0, len(l.keys))
	for name := range l.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
