package chip8

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of the machine state for debuggers.
type Snapshot struct {
	V           [RegisterCount]byte
	I           uint16
	PC          uint16
	Stack       []uint16
	DelayTimer  byte
	SoundTimer  byte
	AwaitingKey bool
	Opcode      uint16 // last decoded opcode
	Mnemonic    string // disassembly of the last decoded opcode
	Cycles      uint64
	Err         error
}

// Snapshot captures the current machine state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		V:           m.registers.V,
		I:           m.registers.I,
		PC:          m.registers.PC,
		Stack:       m.stack.Entries(),
		DelayTimer:  m.timers.Delay,
		SoundTimer:  m.timers.Sound,
		AwaitingKey: m.awaitingKey,
		Opcode:      m.last.Opcode,
		Cycles:      m.cycles,
		Err:         m.err,
	}
	if m.last.Op != OpInvalid {
		snap.Mnemonic = m.last.String()
	}
	return snap
}

// String renders the snapshot as multi line text.
func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PC:%03X I:%03X DT:%02X ST:%02X SP:%d cycles:%d\n",
		s.PC, s.I, s.DelayTimer, s.SoundTimer, len(s.Stack), s.Cycles)

	for i, value := range s.V {
		fmt.Fprintf(&sb, "V%X:%02X", i, value)
		if i%8 == 7 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}

	if len(s.Stack) > 0 {
		sb.WriteString("stack:")
		for _, address := range s.Stack {
			fmt.Fprintf(&sb, " %03X", address)
		}
		sb.WriteByte('\n')
	}

	if s.Mnemonic != "" {
		fmt.Fprintf(&sb, "last: %04X %s\n", s.Opcode, s.Mnemonic)
	}
	if s.AwaitingKey {
		sb.WriteString("waiting for key\n")
	}
	if s.Err != nil {
		fmt.Fprintf(&sb, "halted: %v\n", s.Err)
	}
	return sb.String()
}
