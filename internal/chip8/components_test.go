package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStack(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := 0; i < StackSize; i++ {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	assert.True(t, s.Full())
	assert.True(t, errors.Is(s.Push(0x300), ErrStackOverflow))

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x21E), top)

	address, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x21E), address)
	assert.Equal(t, StackSize-1, s.Len())
}

func TestTimers_TickFloorsAtZero(t *testing.T) {
	timers := Timers{Delay: 2, Sound: 1}
	for i := 0; i < 100; i++ {
		timers.Tick()
	}
	assert.Equal(t, Timers{}, timers)
	assert.False(t, timers.SoundActive())
}

func TestKeypad(t *testing.T) {
	var k Keypad
	k.Set(0x10, true) // ignored
	assert.False(t, k.IsDown(0x10))

	_, ok := k.takePressed()
	assert.False(t, ok)

	k.Set(0x9, true)
	k.Set(0x4, true)
	k.Set(0x4, true) // still held, no new transition
	assert.True(t, k.IsDown(0x9))

	key, ok := k.takePressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x4), key)
	_, ok = k.takePressed()
	assert.False(t, ok)

	k.Set(0x9, false)
	assert.False(t, k.IsDown(0x9))
}

func TestMemory(t *testing.T) {
	var m Memory
	m.Reset()

	assert.NoError(t, m.Write(MaxAddress, 0x12))
	value, err := m.Read(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), value)

	_, err = m.Read(MemorySize)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.True(t, errors.Is(m.Write(MemorySize, 0), ErrOutOfBounds))

	_, err = m.ReadOpcode(MaxAddress)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	assert.NoError(t, m.Load([]byte{0xAB, 0xCD}))
	opcode, err := m.ReadOpcode(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), opcode)

	data, err := m.Slice(FontStart, FontSpriteSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, data)

	data, err = m.Slice(0xFFFF, 0)
	assert.NoError(t, err)
	assert.Len(t, data, 0)
}
