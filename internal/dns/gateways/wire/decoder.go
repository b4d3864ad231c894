package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Decoder reads DNS wire data from a buffer it never modifies.
//
// The buffer is shared, not copied, by every Decoder returned from CloneAt, so a
// compression pointer can be followed backwards while the original cursor stays
// where it was.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// CloneAt returns an independent Decoder over the same buffer positioned at index.
// An index past the end of the buffer yields an exhausted Decoder.
func (d *Decoder) CloneAt(index int) *Decoder {
	if index < 0 {
		index = 0
	}
	if index > len(d.buf) {
		index = len(d.buf)
	}
	return &Decoder{buf: d.buf, pos: index}
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int {
	return len(d.buf) - d.pos
}

// IsEmpty reports whether every byte has been read.
func (d *Decoder) IsEmpty() bool {
	return d.Len() == 0
}

// Index returns the absolute read position within the buffer.
func (d *Decoder) Index() int {
	return d.pos
}

// Peek returns the next byte without advancing. ok is false when the buffer is exhausted.
func (d *Decoder) Peek() (b uint8, ok bool) {
	if d.IsEmpty() {
		return 0, false
	}
	return d.buf[d.pos], true
}

// need fails with ErrUnexpectedEOF unless at least n bytes remain.
func (d *Decoder) need(n int) error {
	if n < 0 || d.Len() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d remaining", ErrUnexpectedEOF, n, d.pos, d.Len())
	}
	return nil
}

// Pop reads one byte. It is equivalent to ReadU8.
func (d *Decoder) Pop() (uint8, error) {
	return d.ReadU8()
}

// ReadU8 reads one byte.
func (d *Decoder) ReadU8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadU16 reads a big-endian uint16.
func (d *Decoder) ReadU16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

// ReadI32 reads a big-endian int32.
func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	//gosec:disable G115 -- reinterpreting the same 32 bits as a signed value.
	return int32(v), err
}

// ReadU32 reads a big-endian uint32.
func (d *Decoder) ReadU32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// ReadVec copies the next n bytes into a newly allocated slice.
// Reading zero bytes always succeeds and does not move the cursor.
func (d *Decoder) ReadVec(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.buf[d.pos:d.pos+n])
	d.pos += n
	return out, nil
}

// ReadSlice returns the next n bytes without copying them.
// The returned slice aliases the underlying buffer and has its capacity capped,
// so appending to it never writes into the buffer.
func (d *Decoder) ReadSlice(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	out := d.buf[d.pos : d.pos+n : d.pos+n]
	d.pos += n
	return out, nil
}

// ReadCharacterData reads a <character-string>: one length octet followed by that
// many bytes, which must be valid UTF-8.
func (d *Decoder) ReadCharacterData() (string, error) {
	length, err := d.ReadU8()
	if err != nil {
		return "", err
	}
	data, err := d.ReadSlice(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %d bytes at offset %d", ErrInvalidEncoding, len(data), d.pos-len(data))
	}
	return string(data), nil
}
