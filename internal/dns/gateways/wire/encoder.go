package wire

import (
	"encoding/binary"
	"fmt"
)

// EncodeMode selects how records are written.
type EncodeMode uint8

const (
	// ModeNormal writes records in the form they were received, with name compression.
	ModeNormal EncodeMode = iota
	// ModeSigning writes records in canonical form (RFC 4034 section 6.2): lowercase,
	// uncompressed names. Used for the data covered by DNSSEC signatures.
	ModeSigning
)

// String returns the textual representation of the EncodeMode.
func (m EncodeMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSigning:
		return "signing"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", m)
	}
}

// minGrowth is the smallest capacity increase when the buffer runs out of room.
const minGrowth = 512

// Encoder builds a DNS wire buffer and tracks compression pointers for names already written.
type Encoder struct {
	buf            []byte
	offset         int
	pointers       map[string]uint16
	mode           EncodeMode
	canonicalNames bool
}

// NewEncoder returns an Encoder in ModeNormal that writes into an empty buffer.
func NewEncoder() *Encoder {
	return NewEncoderWithOffset(nil, 0, ModeNormal)
}

// NewEncoderWithMode returns an empty Encoder using mode.
func NewEncoderWithMode(mode EncodeMode) *Encoder {
	return NewEncoderWithOffset(nil, 0, mode)
}

// NewEncoderWithOffset returns an Encoder that writes into buf starting at offset.
//
// This is used when encoding a fragment that will live inside a larger message:
// compression pointers are relative to the start of buf, so bytes already present
// before offset are kept and count towards every stored pointer. If buf is shorter
// than offset it is zero-padded.
func NewEncoderWithOffset(buf []byte, offset int, mode EncodeMode) *Encoder {
	if offset < 0 {
		offset = 0
	}
	if len(buf) < offset {
		buf = append(buf, make([]byte, offset-len(buf))...)
	}
	return &Encoder{
		buf:      buf,
		offset:   offset,
		pointers: make(map[string]uint16),
		mode:     mode,
	}
}

// Mode returns the encode mode.
func (e *Encoder) Mode() EncodeMode {
	return e.mode
}

// SetCanonicalNames forces names to be written in canonical form even in ModeNormal.
func (e *Encoder) SetCanonicalNames(canonical bool) {
	e.canonicalNames = canonical
}

// IsCanonicalNames reports whether names are written in canonical form, either because
// the flag was set or because the encoder is in ModeSigning.
func (e *Encoder) IsCanonicalNames() bool {
	return e.canonicalNames || e.mode == ModeSigning
}

// Offset returns the absolute write position.
func (e *Encoder) Offset() int {
	return e.offset
}

// Len returns the length of the underlying buffer.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// IsEmpty reports whether the underlying buffer holds no bytes.
func (e *Encoder) IsEmpty() bool {
	return len(e.buf) == 0
}

// IntoBytes returns the finished buffer. The Encoder must not be used afterwards.
func (e *Encoder) IntoBytes() []byte {
	out := e.buf
	e.buf = nil
	e.pointers = nil
	return out
}

// reserve makes room for n bytes at the write position.
//
// Capacity grows by at least minGrowth bytes and at least the current capacity,
// so a long run of small appends costs amortised O(1).
func (e *Encoder) reserve(n int) {
	end := e.offset + n
	if end > cap(e.buf) {
		grow := max(minGrowth, n, cap(e.buf))
		next := make([]byte, len(e.buf), cap(e.buf)+grow)
		copy(next, e.buf)
		e.buf = next
	}
	if end > len(e.buf) {
		e.buf = e.buf[:end]
	}
}

// Emit writes one byte. It is equivalent to EmitU8.
func (e *Encoder) Emit(b uint8) {
	e.EmitU8(b)
}

// EmitU8 writes one byte.
func (e *Encoder) EmitU8(v uint8) {
	e.reserve(1)
	e.buf[e.offset] = v
	e.offset++
}

// EmitU16 writes a big-endian uint16.
func (e *Encoder) EmitU16(v uint16) {
	e.reserve(2)
	binary.BigEndian.PutUint16(e.buf[e.offset:], v)
	e.offset += 2
}

// EmitI32 writes a big-endian int32.
func (e *Encoder) EmitI32(v int32) {
	//gosec:disable G115 -- reinterpreting the same 32 bits as unsigned.
	e.EmitU32(uint32(v))
}

// EmitU32 writes a big-endian uint32.
func (e *Encoder) EmitU32(v uint32) {
	e.reserve(4)
	binary.BigEndian.PutUint32(e.buf[e.offset:], v)
	e.offset += 4
}

// EmitVec writes data verbatim.
func (e *Encoder) EmitVec(data []byte) {
	e.reserve(len(data))
	copy(e.buf[e.offset:], data)
	e.offset += len(data)
}

// EmitCharacterData writes a <character-string>: a length octet followed by the bytes of s.
func (e *Encoder) EmitCharacterData(s string) error {
	if len(s) > MaxCharacterData {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCharacterDataTooLong, len(s), MaxCharacterData)
	}
	e.reserve(len(s) + 1)
	e.buf[e.offset] = uint8(len(s))
	copy(e.buf[e.offset+1:], s)
	e.offset += len(s) + 1
	return nil
}

// PlaceU16 overwrites two already-written bytes at index with v.
// It is used to back-fill length fields such as RDLENGTH once the payload is known.
func (e *Encoder) PlaceU16(index int, v uint16) error {
	if index < 0 || index+2 > len(e.buf) {
		return fmt.Errorf("%w: cannot place 2 bytes at %d in %d byte buffer", ErrUnexpectedEOF, index, len(e.buf))
	}
	binary.BigEndian.PutUint16(e.buf[index:], v)
	return nil
}

// labelKey flattens a label sequence into a map key. Each label is length-prefixed,
// so distinct sequences never collide even when labels contain dots or NULs.
func labelKey(labels []string) string {
	n := 0
	for _, l := range labels {
		n += len(l) + 1
	}
	key := make([]byte, 0, n)
	for _, l := range labels {
		key = append(key, byte(len(l)))
		key = append(key, l...)
	}
	return string(key)
}

// StoreLabelPointer records that labels are about to be written at the current offset.
// Offsets a 14-bit compression pointer cannot reach are not recorded.
func (e *Encoder) StoreLabelPointer(labels []string) {
	if e.offset >= maxPointerOffset {
		return
	}
	//gosec:disable G115 -- offset is below 0x3FFF here.
	e.pointers[labelKey(labels)] = uint16(e.offset)
}

// GetLabelPointer returns the offset at which labels were previously written.
func (e *Encoder) GetLabelPointer(labels []string) (uint16, bool) {
	ptr, ok := e.pointers[labelKey(labels)]
	return ptr, ok
}
