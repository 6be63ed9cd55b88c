package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the canonical CHIP-8 operations.
type Op uint8

// Canonical CHIP-8 operations. The comment lists the opcode pattern.
const (
	OpInvalid Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XKK
	OpSneByte    // 4XKK
	OpSeReg      // 5XY0
	OpLdByte     // 6XKK
	OpAddByte    // 7XKK
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXKK
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdMemVx    // FX55
	OpLdVxMem    // FX65
)

// sysName is the mnemonic of the machine code routine call, which has no
// counterpart in the shared instruction table.
const sysName = "sys"

var opInstructions = map[Op]*chip8.Instruction{
	OpCls:     chip8.ClsInst,
	OpRet:     chip8.RetInst,
	OpJp:      chip8.JpInst,
	OpCall:    chip8.CallInst,
	OpSeByte:  chip8.SeInst,
	OpSneByte: chip8.SneInst,
	OpSeReg:   chip8.SeInst,
	OpLdByte:  chip8.LdInst,
	OpAddByte: chip8.AddInst,
	OpLdReg:   chip8.LdInst,
	OpOr:      chip8.OrInst,
	OpAnd:     chip8.AndInst,
	OpXor:     chip8.XorInst,
	OpAddReg:  chip8.AddInst,
	OpSub:     chip8.SubInst,
	OpShr:     chip8.ShrInst,
	OpSubn:    chip8.SubnInst,
	OpShl:     chip8.ShlInst,
	OpSneReg:  chip8.SneInst,
	OpLdI:     chip8.LdInst,
	OpJpV0:    chip8.JpInst,
	OpRnd:     chip8.RndInst,
	OpDrw:     chip8.DrwInst,
	OpSkp:     chip8.SkpInst,
	OpSknp:    chip8.SknpInst,
	OpLdVxDT:  chip8.LdInst,
	OpLdVxK:   chip8.LdInst,
	OpLdDTVx:  chip8.LdInst,
	OpLdSTVx:  chip8.LdInst,
	OpAddI:    chip8.AddInst,
	OpLdF:     chip8.LdInst,
	OpLdB:     chip8.LdInst,
	OpLdMemVx: chip8.LdInst,
	OpLdVxMem: chip8.LdInst,
}

// Instruction is a decoded opcode with its operand fields extracted.
type Instruction struct {
	Op     Op
	Opcode uint16 // raw opcode
	X      byte   // register index from the second nibble
	Y      byte   // register index from the third nibble
	N      byte   // lowest nibble
	KK     byte   // lowest byte
	NNN    uint16 // lowest 12 bits
}

// Decode translates a raw opcode into an instruction.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      byte(opcode>>8) & 0x0F,
		Y:      byte(opcode>>4) & 0x0F,
		N:      byte(opcode) & 0x0F,
		KK:     byte(opcode),
		NNN:    opcode & 0x0FFF,
	}

	ins.Op = decodeOp(opcode)
	if ins.Op == OpInvalid {
		return ins, fmt.Errorf("%w: %04X", ErrUnknownOpcode, opcode)
	}
	return ins, nil
}

func decodeOp(opcode uint16) Op {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeByte
	case 0x4000:
		return OpSneByte
	case 0x5000:
		if opcode&0x000F == 0 {
			return OpSeReg
		}
	case 0x6000:
		return OpLdByte
	case 0x7000:
		return OpAddByte
	case 0x8000:
		return decodeALU(opcode)
	case 0x9000:
		if opcode&0x000F == 0 {
			return OpSneReg
		}
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		return decodeMisc(opcode)
	}
	return OpInvalid
}

// decodeALU decodes the 8XYN register arithmetic family.
func decodeALU(opcode uint16) Op {
	switch opcode & 0x000F {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpInvalid
}

// decodeMisc decodes the FXKK timer, input and index family.
func decodeMisc(opcode uint16) Op {
	switch opcode & 0x00FF {
	case 0x07:
		return OpLdVxDT
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDTVx
	case 0x18:
		return OpLdSTVx
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdF
	case 0x33:
		return OpLdB
	case 0x55:
		return OpLdMemVx
	case 0x65:
		return OpLdVxMem
	}
	return OpInvalid
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	if i.Op == OpSys {
		return sysName
	}
	ins, ok := opInstructions[i.Op]
	if !ok || ins == nil {
		return ""
	}
	return ins.Name
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	ins, ok := opInstructions[i.Op]
	if !ok || ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// WritesFlag returns true if the instruction overwrites VF with a flag value.
func (i Instruction) WritesFlag() bool {
	switch i.Op {
	case OpAddReg, OpSub, OpSubn, OpShr, OpShl, OpDrw:
		return true
	default:
		return false
	}
}

// String returns the disassembly text of the instruction.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf("invalid $%04X", i.Opcode)
	}
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case OpCls, OpRet:
		return ""
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", i.X)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpLdMemVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLdVxMem:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
