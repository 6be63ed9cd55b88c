package chip8

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the key-down state of the 16 keys and remembers keys that
// transitioned to pressed, which the key-wait instruction consumes.
type Keypad struct {
	down    [KeyCount]bool
	pressed uint16 // bit n set when key n went from up to down
}

// Set updates the state of a key. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Set(key byte, down bool) {
	if key >= KeyCount {
		return
	}
	if down && !k.down[key] {
		k.pressed |= 1 << key
	}
	k.down[key] = down
}

// IsDown returns whether the key is currently held.
func (k *Keypad) IsDown(key byte) bool {
	if key >= KeyCount {
		return false
	}
	return k.down[key]
}

// takePressed returns the lowest key that was newly pressed since the last
// call or the last clearPressed and forgets all press transitions.
func (k *Keypad) takePressed() (byte, bool) {
	if k.pressed == 0 {
		return 0, false
	}
	for key := byte(0); key < KeyCount; key++ {
		if k.pressed&(1<<key) != 0 {
			k.pressed = 0
			return key, true
		}
	}
	return 0, false
}

func (k *Keypad) clearPressed() {
	k.pressed = 0
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	*k = Keypad{}
}
