package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	layout, err := Lookup("COSMAC")
	assert.NoError(t, err)
	assert.Equal(t, Cosmac, layout.Name())

	_, err = Lookup("dvorak")
	assert.ErrorContains(t, err, "cosmac, hex")
}

func TestLayouts_CoverAllKeys(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			layout, err := Lookup(name)
			assert.NoError(t, err)

			var seen [16]bool
			for _, hostKey := range layout.HostKeys() {
				key, ok := layout.Key(hostKey)
				assert.True(t, ok)
				assert.False(t, seen[key], "duplicate mapping for host key %s", hostKey)
				seen[key] = true
			}
			for key, ok := range seen {
				assert.True(t, ok, "key %X not mapped", key)
			}
		})
	}
}

func TestLayout_Key(t *testing.T) {
	tests := []struct {
		layout  string
		hostKey string
		key     byte
		ok      bool
	}{
		{Cosmac, "Digit4", 0xC, true},
		{Cosmac, "X", 0x0, true},
		{Cosmac, "V", 0xF, true},
		{Cosmac, "Digit0", 0, false},
		{Hex, "Digit0", 0x0, true},
		{Hex, "F", 0xF, true},
		{Hex, "Q", 0, false},
	}

	for _, tt := range tests {
		layout, err := Lookup(tt.layout)
		assert.NoError(t, err)

		key, ok := layout.Key(tt.hostKey)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.key, key)
	}
}
