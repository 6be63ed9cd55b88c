package chip8

import "fmt"

// StackSize is the maximum subroutine nesting depth.
const StackSize = 16

// Stack holds the return addresses of active subroutine calls.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if s.sp == StackSize {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, StackSize)
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Full returns whether another push would overflow.
func (s *Stack) Full() bool {
	return s.sp == StackSize
}

// Len returns the current depth.
func (s *Stack) Len() int {
	return s.sp
}

// Peek returns the most recent return address without removing it.
func (s *Stack) Peek() (uint16, bool) {
	if s.sp == 0 {
		return 0, false
	}
	return s.entries[s.sp-1], true
}

// Entries returns a copy of the active return addresses, oldest first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, s.sp)
	copy(entries, s.entries[:s.sp])
	return entries
}

// Reset empties the stack.
func (s *Stack) Reset() {
	*s = Stack{}
}
