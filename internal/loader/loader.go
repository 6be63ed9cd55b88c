// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// romExtensions are the file extensions commonly used for CHIP-8 ROMs.
var romExtensions = map[string]struct{}{
	".ch8": {},
	".c8":  {},
	".rom": {},
}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a raw CHIP-8 ROM. Files that do not fit into program space are
// rejected without reading them completely.
func (l *Loader) Load(path string) ([]byte, error) {
	if !l.hasROMExtension(path) {
		l.logger.Warn("Unusual file extension for a CHIP-8 ROM", log.String("file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.Read(file)
}

// Read reads a raw ROM from the reader.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	// read one byte more than fits to detect oversized ROMs
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxRomSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	if len(data) > chip8.MaxRomSize {
		return nil, fmt.Errorf("%w: more than %d bytes", chip8.ErrRomTooLarge, chip8.MaxRomSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ROM is empty")
	}

	l.logger.Debug("Loaded ROM", log.Int("size", len(data)))
	return data, nil
}

// hasROMExtension determines whether the file name looks like a CHIP-8 ROM.
func (l *Loader) hasROMExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := romExtensions[ext]
	return ok
}
