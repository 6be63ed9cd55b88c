package chip8

// Register file layout.
const (
	RegisterCount = 16
	FlagRegister  = 0xF

	// InstructionSize is the size of every opcode in bytes.
	InstructionSize = 2
)

// Registers holds the general purpose registers V0-VF, the index register
// and the program counter.
type Registers struct {
	V  [RegisterCount]byte
	I  uint16
	PC uint16
}
