// Package wire provides the primitive readers and writers for the DNS wire format
// as specified in RFC 1035. Multi-byte integers are big-endian (network order).
//
// Decoder is a bounds-checked cursor over an immutable buffer. It can be cloned at
// an earlier offset to follow name compression pointers without losing its own
// position. Encoder is a growable buffer builder that also carries the name
// compression table and the encode mode used for DNSSEC canonical form.
package wire

import "errors"

var (
	// ErrUnexpectedEOF is returned when a read asks for more bytes than remain.
	ErrUnexpectedEOF = errors.New("unexpected end of input reached")

	// ErrCharacterDataTooLong is returned when a character-string exceeds 255 bytes.
	ErrCharacterDataTooLong = errors.New("character data too long")

	// ErrInvalidEncoding is returned when character data is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid character data encoding")
)

// MaxCharacterData is the largest payload of a <character-string>, excluding the length octet.
const MaxCharacterData = 255

// maxPointerOffset bounds the offsets a 14-bit compression pointer can reference.
const maxPointerOffset = 0x3FFF
