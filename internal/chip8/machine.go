// Package chip8 implements the CHIP-8 interpreter core: memory, registers,
// call stack, timers, framebuffer and keypad, driven one instruction at a
// time through Step.
//
// The machine performs no timing and no I/O of its own. A driver calls Step
// at the instruction rate, TickTimers at 60 Hz, updates keys with SetKey and
// reads the Display and SoundActive state once per frame.
package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the source of the random byte used by the RND instruction.
func WithRandom(random func() byte) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// Machine is a complete CHIP-8 virtual machine.
type Machine struct {
	memory    Memory
	registers Registers
	stack     Stack
	timers    Timers
	display   Display
	keypad    Keypad

	random func() byte

	awaitingKey bool // FX0A is waiting for a key press
	redraw      bool // display changed since the last ConsumeRedraw

	last   Instruction
	cycles uint64
	err    error // fatal error that halted the machine
}

// New returns a machine in reset state.
func New(opts ...Option) *Machine {
	m := &Machine{
		random: func() byte {
			return byte(rand.N(256))
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset returns the machine to power-on state. Memory only contains the
// font sprites afterwards.
func (m *Machine) Reset() {
	m.memory.Reset()
	m.registers = Registers{PC: ProgramStart}
	m.stack.Reset()
	m.timers = Timers{}
	m.display.Clear()
	m.keypad.Reset()
	m.awaitingKey = false
	m.redraw = true
	m.last = Instruction{}
	m.cycles = 0
	m.err = nil
}

// LoadROM resets the machine and copies the ROM into program space.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxRomSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), MaxRomSize)
	}
	m.Reset()
	return m.memory.Load(rom)
}

// Step executes a single instruction cycle. While the machine waits for a key
// press the cycle completes without retiring an instruction. After a fatal
// error every further call returns that error.
func (m *Machine) Step() (Cycle, error) {
	if m.err != nil {
		return Cycle{}, m.err
	}
	if m.awaitingKey {
		return m.stepAwaitingKey()
	}

	address := m.registers.PC
	opcode, err := m.memory.ReadOpcode(address)
	if err != nil {
		return Cycle{}, m.halt(address, 0, err)
	}

	ins, err := Decode(opcode)
	if err != nil {
		return Cycle{}, m.halt(address, opcode, err)
	}
	m.last = ins

	next, err := m.nextPC(ins)
	if err != nil {
		return Cycle{}, m.halt(address, opcode, err)
	}

	before := m.state()
	if err := m.execute(ins); err != nil {
		return Cycle{}, m.halt(address, opcode, err)
	}
	m.registers.PC = next
	m.cycles++

	cycle := Cycle{
		Address:     address,
		Instruction: ins,
		Next:        next,
		Retired:     !m.awaitingKey,
		Waiting:     m.awaitingKey,
		Skipped:     ins.IsSkip() && next == address+2*InstructionSize,
		Redraw:      ins.Op == OpCls || ins.Op == OpDrw,
		Effects:     before.diff(m.state()),
	}
	return cycle, nil
}

// stepAwaitingKey completes a pending FX0A once a key was newly pressed.
func (m *Machine) stepAwaitingKey() (Cycle, error) {
	address := m.registers.PC
	cycle := Cycle{
		Address:     address,
		Instruction: m.last,
		Next:        address,
		Waiting:     true,
	}
	m.cycles++

	key, ok := m.keypad.takePressed()
	if !ok {
		return cycle, nil
	}

	next := address + InstructionSize
	if err := checkPC(next); err != nil {
		return Cycle{}, m.halt(address, m.last.Opcode, err)
	}

	before := m.state()
	m.registers.V[m.last.X] = key
	m.registers.PC = next
	m.awaitingKey = false

	cycle.Next = next
	cycle.Waiting = false
	cycle.Retired = true
	cycle.Effects = before.diff(m.state())
	return cycle, nil
}

// nextPC resolves the program counter after the instruction without
// mutating any state.
func (m *Machine) nextPC(ins Instruction) (uint16, error) {
	pc := m.registers.PC
	v := &m.registers.V
	next := pc + InstructionSize

	skipIf := func(cond bool) {
		if cond {
			next += InstructionSize
		}
	}

	switch ins.Op {
	case OpJp:
		next = ins.NNN
	case OpJpV0:
		next = ins.NNN + uint16(v[0])
	case OpCall:
		if m.stack.Full() {
			return 0, fmt.Errorf("%w: depth %d", ErrStackOverflow, StackSize)
		}
		next = ins.NNN
	case OpRet:
		address, ok := m.stack.Peek()
		if !ok {
			return 0, ErrStackUnderflow
		}
		next = address
	case OpSeByte:
		skipIf(v[ins.X] == ins.KK)
	case OpSneByte:
		skipIf(v[ins.X] != ins.KK)
	case OpSeReg:
		skipIf(v[ins.X] == v[ins.Y])
	case OpSneReg:
		skipIf(v[ins.X] != v[ins.Y])
	case OpSkp:
		skipIf(m.keypad.IsDown(v[ins.X] & 0x0F))
	case OpSknp:
		skipIf(!m.keypad.IsDown(v[ins.X] & 0x0F))
	case OpLdVxK:
		// retired by stepAwaitingKey once a key was pressed
		next = pc
	}

	if err := checkPC(next); err != nil {
		return 0, err
	}
	return next, nil
}

// execute applies the side effects of the instruction other than the
// program counter update. Every memory range is validated before the first
// write so that a failing instruction leaves the machine unchanged.
func (m *Machine) execute(ins Instruction) error {
	v := &m.registers.V

	switch ins.Op {
	case OpSys, OpJp, OpJpV0, OpSeByte, OpSneByte, OpSeReg, OpSneReg, OpSkp, OpSknp:
		// control flow only, handled by nextPC

	case OpCls:
		m.display.Clear()
		m.redraw = true

	case OpCall:
		return m.stack.Push(m.registers.PC + InstructionSize)

	case OpRet:
		_, err := m.stack.Pop()
		return err

	case OpLdByte:
		v[ins.X] = ins.KK
	case OpAddByte:
		v[ins.X] += ins.KK
	case OpLdReg:
		v[ins.X] = v[ins.Y]
	case OpOr:
		v[ins.X] |= v[ins.Y]
	case OpAnd:
		v[ins.X] &= v[ins.Y]
	case OpXor:
		v[ins.X] ^= v[ins.Y]

	case OpAddReg:
		sum := uint16(v[ins.X]) + uint16(v[ins.Y])
		m.setWithFlag(ins.X, byte(sum), sum > 0xFF)
	case OpSub:
		m.setWithFlag(ins.X, v[ins.X]-v[ins.Y], v[ins.X] >= v[ins.Y])
	case OpSubn:
		m.setWithFlag(ins.X, v[ins.Y]-v[ins.X], v[ins.Y] >= v[ins.X])
	case OpShr:
		m.setWithFlag(ins.X, v[ins.X]>>1, v[ins.X]&0x01 != 0)
	case OpShl:
		m.setWithFlag(ins.X, v[ins.X]<<1, v[ins.X]&0x80 != 0)

	case OpLdI:
		m.registers.I = ins.NNN
	case OpAddI:
		m.registers.I += uint16(v[ins.X])
	case OpLdF:
		m.registers.I = FontStart + uint16(v[ins.X]&0x0F)*FontSpriteSize

	case OpRnd:
		v[ins.X] = m.random() & ins.KK

	case OpDrw:
		sprite, err := m.memory.Slice(m.registers.I, int(ins.N))
		if err != nil {
			return err
		}
		collision := m.display.Draw(v[ins.X], v[ins.Y], sprite)
		v[FlagRegister] = boolToFlag(collision)
		m.redraw = true

	case OpLdVxDT:
		v[ins.X] = m.timers.Delay
	case OpLdDTVx:
		m.timers.Delay = v[ins.X]
	case OpLdSTVx:
		m.timers.Sound = v[ins.X]

	case OpLdVxK:
		m.keypad.clearPressed()
		m.awaitingKey = true

	case OpLdB:
		if err := checkRange(m.registers.I, 3); err != nil {
			return err
		}
		value := v[ins.X]
		digits := [3]byte{value / 100, value / 10 % 10, value % 10}
		for i, digit := range digits {
			m.memory.data[m.registers.I+uint16(i)] = digit
		}

	case OpLdMemVx:
		if err := checkRange(m.registers.I, int(ins.X)+1); err != nil {
			return err
		}
		copy(m.memory.data[m.registers.I:], v[:ins.X+1])

	case OpLdVxMem:
		data, err := m.memory.Slice(m.registers.I, int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(v[:], data)

	default:
		return fmt.Errorf("%w: %04X", ErrUnknownOpcode, ins.Opcode)
	}
	return nil
}

// setWithFlag stores the result and then the flag, so that when the
// destination is VF the flag wins.
func (m *Machine) setWithFlag(register, result byte, flag bool) {
	m.registers.V[register] = result
	m.registers.V[FlagRegister] = boolToFlag(flag)
}

// halt records a fatal error, after which the machine refuses to step.
func (m *Machine) halt(address, opcode uint16, err error) error {
	var opErr *OpcodeError
	if !errors.As(err, &opErr) {
		err = &OpcodeError{Address: address, Opcode: opcode, Err: err}
	}
	m.err = err
	return err
}

// TickTimers decrements the delay and sound timers. Drivers call it at
// TimerFrequency independent of the instruction rate.
func (m *Machine) TickTimers() {
	m.timers.Tick()
}

// SetKey updates the state of a keypad key.
func (m *Machine) SetKey(key byte, down bool) {
	m.keypad.Set(key, down)
}

// IsKeyDown returns whether a keypad key is held.
func (m *Machine) IsKeyDown(key byte) bool {
	return m.keypad.IsDown(key)
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.timers.Delay
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.timers.Sound
}

// Display returns the framebuffer for reading.
func (m *Machine) Display() *Display {
	return &m.display
}

// ConsumeRedraw returns whether the framebuffer changed since the last call.
func (m *Machine) ConsumeRedraw() bool {
	redraw := m.redraw
	m.redraw = false
	return redraw
}

// AwaitingKey returns whether execution is suspended by FX0A.
func (m *Machine) AwaitingKey() bool {
	return m.awaitingKey
}

// Err returns the fatal error that halted the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// ReadMemory returns a byte of memory.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	return m.memory.Read(address)
}

// checkPC validates that pc is an even address inside program space.
func checkPC(pc uint16) error {
	if pc < ProgramStart || pc > MaxProgramCounter {
		return fmt.Errorf("%w: program counter %04X", ErrOutOfBounds, pc)
	}
	if pc&1 != 0 {
		return fmt.Errorf("%w: misaligned program counter %04X", ErrOutOfBounds, pc)
	}
	return nil
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
