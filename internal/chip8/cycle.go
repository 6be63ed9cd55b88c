package chip8

import (
	"fmt"
	"strings"
)

// Cycle describes what a single Step did.
type Cycle struct {
	Address     uint16      // program counter at the start of the cycle
	Instruction Instruction // executed or awaited instruction
	Next        uint16      // program counter after the cycle
	Retired     bool        // an instruction completed
	Waiting     bool        // suspended waiting for a key press
	Skipped     bool        // a skip instruction skipped the next instruction
	Redraw      bool        // the framebuffer was modified
	Effects     []Effect    // changed registers, timers and stack depth
}

// String returns the trace line of the cycle.
func (c Cycle) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[PC:0x%03X] [RAW:0x%04X] %s", c.Address, c.Instruction.Opcode, c.Instruction)
	if c.Waiting {
		sb.WriteString(" (waiting for key)")
	}
	for _, effect := range c.Effects {
		sb.WriteByte(' ')
		sb.WriteString(effect.String())
	}
	return sb.String()
}

// Effect is a single observable state change of a cycle.
type Effect struct {
	Target string
	Old    uint16
	New    uint16
}

func (e Effect) String() string {
	return fmt.Sprintf("%s=$%02X", e.Target, e.New)
}

// state is the part of the machine state that effects are computed from.
type state struct {
	v     [RegisterCount]byte
	i     uint16
	sp    int
	delay byte
	sound byte
}

func (m *Machine) state() state {
	return state{
		v:     m.registers.V,
		i:     m.registers.I,
		sp:    m.stack.Len(),
		delay: m.timers.Delay,
		sound: m.timers.Sound,
	}
}

// diff lists the differences from s to after.
func (s state) diff(after state) []Effect {
	var effects []Effect
	for i := range s.v {
		if s.v[i] != after.v[i] {
			effects = append(effects, Effect{
				Target: fmt.Sprintf("V%X", i),
				Old:    uint16(s.v[i]),
				New:    uint16(after.v[i]),
			})
		}
	}
	if s.i != after.i {
		effects = append(effects, Effect{Target: "I", Old: s.i, New: after.i})
	}
	if s.sp != after.sp {
		effects = append(effects, Effect{Target: "SP", Old: uint16(s.sp), New: uint16(after.sp)})
	}
	if s.delay != after.delay {
		effects = append(effects, Effect{Target: "DT", Old: uint16(s.delay), New: uint16(after.delay)})
	}
	if s.sound != after.sound {
		effects = append(effects, Effect{Target: "ST", Old: uint16(s.sound), New: uint16(after.sound)})
	}
	return effects
}
