package sky

import (
	"encoding/binary"
)

// All fixed-width integers on disk are big-endian.

// encoder appends wire-format fields to a growing buffer.
type encoder struct {
	b []byte
}

func (e *encoder) uint8(v uint8) {
	e.b = append(e.b, v)
}

func (e *encoder) uint16(v uint16) {
	e.b = binary.BigEndian.AppendUint16(e.b, v)
}

func (e *encoder) uint32(v uint32) {
	e.b = binary.BigEndian.AppendUint32(e.b, v)
}

func (e *encoder) uint64(v uint64) {
	e.b = binary.BigEndian.AppendUint64(e.b, v)
}

func (e *encoder) bytes(p []byte) {
	e.b = append(e.b, p...)
}

// reserveUint32 appends a zero length prefix and returns its offset so the
// caller can backfill it once the prefixed region is written.
func (e *encoder) reserveUint32() int {
	off := len(e.b)
	e.b = append(e.b, 0, 0, 0, 0)
	return off
}

func (e *encoder) fillUint32(off int, v uint32) {
	binary.BigEndian.PutUint32(e.b[off:off+4], v)
}

// decoder consumes wire-format fields from a byte slice. Every read is
// bounds-checked; a short buffer yields ErrCorrupt.
type decoder struct {
	b   []byte
	off int
}

func (d *decoder) remaining() int {
	return len(d.b) - d.off
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, corruptf("need %d bytes at offset %d, have %d", n, d.off, d.remaining())
	}
	p := d.b[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *decoder) uint8() (uint8, error) {
	p, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (d *decoder) uint16() (uint16, error) {
	p, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (d *decoder) uint32() (uint32, error) {
	p, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (d *decoder) uint64() (uint64, error) {
	p, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}
