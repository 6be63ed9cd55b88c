package chip8

import "fmt"

// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, font sprites at FontStart
//	0x200-0xFFF: Program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that ROMs are loaded to and execution begins at.
	ProgramStart = 0x200

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// LastCodeAddress is the highest address an instruction can be fetched from,
	// leaving room for the second opcode byte.
	LastCodeAddress = MaxAddress - 1

	// MaxProgramCounter is the highest even address below LastCodeAddress
	// that the program counter may hold.
	MaxProgramCounter = 0xFFC

	// FontStart is the address of the built-in hexadecimal digit sprites.
	FontStart = 0x050

	// FontSpriteSize is the number of bytes of a single digit sprite.
	FontSpriteSize = 5

	// MaxRomSize is the largest ROM that fits into program space.
	MaxRomSize = MemorySize - ProgramStart
)

var fontSet = [16 * FontSpriteSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB address space of the machine.
type Memory struct {
	data [MemorySize]byte
}

// Reset zeroes the memory and installs the font sprites.
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}
	copy(m.data[FontStart:], fontSet[:])
}

// Load copies the ROM verbatim into program space.
func (m *Memory) Load(rom []byte) error {
	if len(rom) > MaxRomSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), MaxRomSize)
	}
	copy(m.data[ProgramStart:], rom)
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: reading address %04X", ErrOutOfBounds, address)
	}
	return m.data[address], nil
}

// ReadOpcode returns the big-endian 16-bit opcode at the given address.
func (m *Memory) ReadOpcode(address uint16) (uint16, error) {
	if address > LastCodeAddress {
		return 0, fmt.Errorf("%w: fetching opcode at address %04X", ErrOutOfBounds, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: writing address %04X", ErrOutOfBounds, address)
	}
	m.data[address] = value
	return nil
}

// Slice returns a read-only view of length bytes starting at address.
// The range is validated as a whole so that callers can check before mutating.
func (m *Memory) Slice(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	return m.data[address : int(address)+length : int(address)+length], nil
}

// Dump returns a copy of the complete memory.
func (m *Memory) Dump() []byte {
	dump := make([]byte, MemorySize)
	copy(dump, m.data[:])
	return dump
}

// checkRange validates that length bytes starting at address are addressable.
func checkRange(address uint16, length int) error {
	if length == 0 {
		return nil
	}
	end := int(address) + length - 1
	if end > MaxAddress {
		return fmt.Errorf("%w: range %04X-%04X", ErrOutOfBounds, address, end)
	}
	return nil
}
