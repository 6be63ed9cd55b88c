package chip8

import (
	"errors"
	"fmt"
)

// Fatal error conditions of the machine. All of them halt execution.
var (
	ErrOutOfBounds    = errors.New("address out of bounds")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrRomTooLarge    = errors.New("rom too large")
)

// OpcodeError wraps a fatal error with the address and raw opcode of the
// instruction that caused it.
type OpcodeError struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("opcode %04X at address %03X: %v", e.Opcode, e.Address, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
