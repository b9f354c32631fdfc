package ebilib

import (
	"fmt"
	"io"
)

// Memory gives byte access to an external memory device mapped in an EBI bank.
type Memory struct {
	window []byte
}

// NewMemory returns a Memory over window, usually obtained with MapBank.
func NewMemory(window []byte) *Memory {
	return &Memory{window: window}
}

// Size returns the size of the memory window in bytes.
func (m *Memory) Size() int64 { return int64(len(m.window)) }

// ReadAt implements io.ReaderAt.
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errOutOfRange
	}
	if off >= m.Size() {
		return 0, io.EOF
	}
	n := loadBytes(p, m.window[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. Writes past the end of the window are
// truncated and reported with io.ErrShortWrite.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off > m.Size() {
		return 0, errOutOfRange
	}
	n := storeBytes(m.window[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReaderWriterAt is random access storage that Probe can test.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// Probe runs a destructive walking ones test over the 16 data lines and the
// address lines of the first size bytes of rw. An 8-bit device is tested the
// same way since its bytes are separate addresses. It returns an error wrapping
// ErrDataBus or ErrAddressBus on the first fault found.
func Probe(rw ReaderWriterAt, size int64) error {
	if err := probeDataBus(rw); err != nil {
		return err
	}
	return probeAddressBus(rw, size)
}

// probeDataBus walks a one across all 16 data lines. The half word is
// stored little endian, so D8..D15 carry the byte at offset 1.
func probeDataBus(rw ReaderWriterAt) error {
	var b [2]byte
	for line := 0; line < 16; line++ {
		pattern := uint16(1) << line
		b[0], b[1] = byte(pattern), byte(pattern>>8)
		if _, err := rw.WriteAt(b[:], 0); err != nil {
			return err
		}
		if _, err := rw.ReadAt(b[:], 0); err != nil {
			return err
		}
		if got := uint16(b[0]) | uint16(b[1])<<8; got != pattern {
			return fmt.Errorf("%w: D%d: wrote %#04x, read %#04x", ErrDataBus, line, pattern, got)
		}
	}
	return nil
}

func probeAddressBus(rw ReaderWriterAt, size int64) error {
	const (
		pattern     = 0xaa
		antipattern = 0x55
	)
	write := func(off int64, v byte) error {
		_, err := rw.WriteAt([]byte{v}, off)
		return err
	}
	read := func(off int64) (byte, error) {
		var b [1]byte
		_, err := rw.ReadAt(b[:], off)
		return b[0], err
	}

	for off := int64(1); off < size; off <<= 1 {
		if err := write(off, pattern); err != nil {
			return err
		}
	}
	if err := write(0, antipattern); err != nil {
		return err
	}
	// Stuck high lines.
	for off := int64(1); off < size; off <<= 1 {
		v, err := read(off)
		if err != nil {
			return err
		}
		if v != pattern {
			return fmt.Errorf("%w: offset %#x aliases offset 0", ErrAddressBus, off)
		}
	}
	// Stuck low or shorted lines.
	if err := write(0, pattern); err != nil {
		return err
	}
	for test := int64(1); test < size; test <<= 1 {
		if err := write(test, antipattern); err != nil {
			return err
		}
		if v, err := read(0); err != nil {
			return err
		} else if v != pattern {
			return fmt.Errorf("%w: offset %#x aliases offset 0", ErrAddressBus, test)
		}
		for off := int64(1); off < size; off <<= 1 {
			if off == test {
				continue
			}
			v, err := read(off)
			if err != nil {
				return err
			}
			if v != pattern {
				return fmt.Errorf("%w: offset %#x aliases offset %#x", ErrAddressBus, test, off)
			}
		}
		if err := write(test, pattern); err != nil {
			return err
		}
	}
	return nil
}
