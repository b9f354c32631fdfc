package ebilib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory(make([]byte, 16))
	if m.Size() != 16 {
		t.Fatalf("size %d", m.Size())
	}
	n, err := m.WriteAt([]byte("hello"), 4)
	if n != 5 || err != nil {
		t.Fatalf("WriteAt = %d, %v", n, err)
	}
	got := make([]byte, 5)
	if n, err := m.ReadAt(got, 4); n != 5 || err != nil || string(got) != "hello" {
		t.Errorf("ReadAt = %d, %v, %q", n, err, got)
	}

	n, err = m.WriteAt([]byte("world!"), 12)
	if n != 4 || err != io.ErrShortWrite {
		t.Errorf("write past end = %d, %v", n, err)
	}
	buf := make([]byte, 8)
	n, err = m.ReadAt(buf, 12)
	if n != 4 || err != io.EOF || !bytes.Equal(buf[:4], []byte("worl")) {
		t.Errorf("read past end = %d, %v, %q", n, err, buf[:n])
	}
	if _, err := m.ReadAt(buf, 16); err != io.EOF {
		t.Errorf("read at end: %v", err)
	}
	if _, err := m.ReadAt(buf, -1); err != errOutOfRange {
		t.Errorf("negative read offset: %v", err)
	}
	if _, err := m.WriteAt(buf, 17); err != errOutOfRange {
		t.Errorf("write beyond end: %v", err)
	}
}

// faultyMemory models a device with stuck data or address lines.
type faultyMemory struct {
	cells []byte
	// Offsets are ANDed with addrAnd and ORed with addrOr.
	addrAnd, addrOr int64
	// dataLow bits always read as zero, oddDataLow bits only at odd offsets,
	// as the upper data lines of a 16-bit device.
	dataLow, oddDataLow byte
}

func newFaultyMemory(size int) *faultyMemory {
	return &faultyMemory{cells: make([]byte, size), addrAnd: -1}
}

func (f *faultyMemory) decode(off int64) int64 { return off&f.addrAnd | f.addrOr }

func (f *faultyMemory) ReadAt(p []byte, off int64) (int, error) {
	for i := range p {
		addr := off + int64(i)
		p[i] = f.cells[f.decode(addr)] &^ f.dataLow
		if addr%2 == 1 {
			p[i] &^= f.oddDataLow
		}
	}
	return len(p), nil
}

func (f *faultyMemory) WriteAt(p []byte, off int64) (int, error) {
	for i, v := range p {
		f.cells[f.decode(off+int64(i))] = v
	}
	return len(p), nil
}

func TestProbe(t *testing.T) {
	if err := Probe(NewMemory(make([]byte, 4096)), 4096); err != nil {
		t.Errorf("healthy memory: %v", err)
	}
	if err := Probe(newFaultyMemory(256), 256); err != nil {
		t.Errorf("fault free fake: %v", err)
	}

	for name, tc := range map[string]struct {
		mem  *faultyMemory
		want error
	}{
		"data line low":    {&faultyMemory{cells: make([]byte, 256), addrAnd: -1, dataLow: 1 << 3}, ErrDataBus},
		"address line low": {&faultyMemory{cells: make([]byte, 256), addrAnd: ^int64(1 << 5)}, ErrAddressBus},
		"address high":     {&faultyMemory{cells: make([]byte, 256), addrAnd: -1, addrOr: 1 << 4}, ErrAddressBus},
	} {
		err := Probe(tc.mem, 256)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", name, err, tc.want)
		}
	}
}

func TestProbeUpperDataLines(t *testing.T) {
	for bit := 0; bit < 8; bit++ {
		mem := &faultyMemory{cells: make([]byte, 256), addrAnd: -1, oddDataLow: 1 << bit}
		err := Probe(mem, 256)
		if !errors.Is(err, ErrDataBus) {
			t.Errorf("D%d stuck low: got %v, want %v", bit+8, err, ErrDataBus)
			continue
		}
		if want := fmt.Sprintf("D%d:", bit+8); !strings.Contains(err.Error(), want) {
			t.Errorf("D%d stuck low: %v does not name the line", bit+8, err)
		}
	}
}
