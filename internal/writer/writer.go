// Package writer writes annotated assembly listings of CHIP-8 programs.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
)

const (
	dataBytesPerLine = 8

	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// Options of the writer.
type Options struct {
	HexComments    bool // append the raw bytes of every line as comment
	OffsetComments bool // append the address of every line as comment
}

// Writer writes the listing of a ROM.
type Writer struct {
	options Options
	writer  io.Writer
	labels  map[uint16]string
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write decodes the ROM as loaded at the program start address and writes
// it as listing. Words that do not decode to an instruction are written as
// data bytes.
func (w *Writer) Write(rom []byte) error {
	if len(rom) > chip8.MaxRomSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", chip8.ErrRomTooLarge, len(rom), chip8.MaxRomSize)
	}

	w.labels = collectLabels(rom)
	if err := w.writeCommentHeader(rom); err != nil {
		return err
	}

	var data []byte
	dataStart := 0

	for offset := 0; offset+1 < len(rom); offset += chip8.InstructionSize {
		address := chip8.ProgramStart + uint16(offset)
		if _, ok := w.labels[address]; ok {
			// a label ends the current data run
			if err := w.bundleDataWrites(dataStart, data); err != nil {
				return err
			}
			data = nil
			if err := w.writeLabel(address); err != nil {
				return err
			}
		}

		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		ins, decodeErr := chip8.Decode(opcode)
		if decodeErr != nil {
			if len(data) == 0 {
				dataStart = offset
			}
			data = append(data, rom[offset], rom[offset+1])
			continue
		}

		if err := w.bundleDataWrites(dataStart, data); err != nil {
			return err
		}
		data = nil

		if err := w.writeCodeLine(address, ins); err != nil {
			return err
		}
	}

	if len(rom)%2 == 1 {
		if len(data) == 0 {
			dataStart = len(rom) - 1
		}
		data = append(data, rom[len(rom)-1])
	}
	return w.bundleDataWrites(dataStart, data)
}

// collectLabels names the targets of jumps and calls that are inside the ROM.
func collectLabels(rom []byte) map[uint16]string {
	labels := map[uint16]string{}
	end := chip8.ProgramStart + uint16(len(rom))

	for offset := 0; offset+1 < len(rom); offset += chip8.InstructionSize {
		opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		ins, err := chip8.Decode(opcode)
		if err != nil || ins.NNN < chip8.ProgramStart || ins.NNN >= end {
			continue
		}

		switch ins.Op {
		case chip8.OpCall:
			labels[ins.NNN] = fmt.Sprintf(funcNaming, ins.NNN)
		case chip8.OpJp:
			if _, ok := labels[ins.NNN]; !ok {
				labels[ins.NNN] = fmt.Sprintf(labelNaming, ins.NNN)
			}
		default:
		}
	}
	return labels
}

// writeCommentHeader writes the checksum and code base address.
func (w *Writer) writeCommentHeader(rom []byte) error {
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", crc32.ChecksumIEEE(rom)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// writeLabel writes the label of the address if it has one.
func (w *Writer) writeLabel(address uint16) error {
	label, ok := w.labels[address]
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "\n%s:\n", label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

// writeCodeLine writes a decoded instruction, referencing jump and call
// targets by their label.
func (w *Writer) writeCodeLine(address uint16, ins chip8.Instruction) error {
	code := ins.String()
	if ins.Op == chip8.OpJp || ins.Op == chip8.OpCall {
		if label, ok := w.labels[ins.NNN]; ok {
			code = fmt.Sprintf("%s %s", ins.Name(), label)
		}
	}

	var raw [2]byte
	raw[0], raw[1] = byte(ins.Opcode>>8), byte(ins.Opcode)
	return w.writeLine(code, address, raw[:])
}

// bundleDataWrites writes data bytes with dataBytesPerLine bytes per line.
func (w *Writer) bundleDataWrites(offset int, data []byte) error {
	for i := 0; i < len(data); i += dataBytesPerLine {
		toWrite := min(len(data)-i, dataBytesPerLine)
		chunk := data[i : i+toWrite]

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j, b := range chunk {
			if j > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "$%02x", b)
		}

		address := chip8.ProgramStart + uint16(offset+i)
		if err := w.writeLine(buf.String(), address, chunk); err != nil {
			return err
		}
	}
	return nil
}

// writeLine writes a code or data line with the enabled comments.
func (w *Writer) writeLine(line string, address uint16, raw []byte) error {
	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", address))
	}
	if w.options.HexComments {
		comments = append(comments, fmt.Sprintf("% X", raw))
	}

	var err error
	if len(comments) == 0 {
		_, err = fmt.Fprintf(w.writer, "  %s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, strings.Join(comments, " "))
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
