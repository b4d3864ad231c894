package domain

import (
	"fmt"

	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// RData is the type-specific payload of a resource record.
// Implementations live in the rrdata package.
type RData interface {
	// Type returns the record type this payload belongs to.
	Type() RRType
	// Emit writes the payload in wire form. Names inside the payload honour the
	// encoder's canonical mode.
	Emit(enc *wire.Encoder) error
	// Equal compares payloads structurally. Embedded names compare case-insensitively.
	Equal(other RData) bool
	// String returns the presentation form of the payload.
	String() string
}

// RDataEqual compares two payloads, treating two nil payloads as equal.
func RDataEqual(a, b RData) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Record is a single DNS resource record.
//
// A nil RData is allowed for the empty payloads of RFC 2136 update messages.
type Record struct {
	Name  Name
	Type  RRType
	Class RRClass
	TTL   uint32
	RData RData
}

// NewRecord constructs an IN-class record whose type is taken from rdata.
func NewRecord(name Name, ttl uint32, rdata RData) Record {
	return Record{
		Name:  name,
		Type:  rdata.Type(),
		Class: RRClassIN,
		TTL:   ttl,
		RData: rdata,
	}
}

// Equal reports whether every field of the two records matches.
func (r Record) Equal(other Record) bool {
	return r.Type == other.Type &&
		r.Class == other.Class &&
		r.TTL == other.TTL &&
		r.Name.Equal(other.Name) &&
		RDataEqual(r.RData, other.RData)
}

// Emit writes the record in RFC 1035 section 4.1.3 form. RDLENGTH is back-filled
// once the payload has been written.
func (r Record) Emit(enc *wire.Encoder) error {
	if err := r.Name.Emit(enc); err != nil {
		return fmt.Errorf("encoding owner name: %w", err)
	}
	enc.EmitU16(uint16(r.Type))
	enc.EmitU16(uint16(r.Class))
	enc.EmitU32(r.TTL)

	lengthAt := enc.Offset()
	enc.EmitU16(0)
	if r.RData == nil {
		return nil
	}
	if err := r.RData.Emit(enc); err != nil {
		return fmt.Errorf("encoding %s rdata: %w", r.Type, err)
	}

	length := enc.Offset() - lengthAt - 2
	if length > 0xFFFF {
		return fmt.Errorf("%w: %d bytes", ErrRDataTooLong, length)
	}
	//gosec:disable G115 -- bounded by the check above.
	return enc.PlaceU16(lengthAt, uint16(length))
}

// String returns the record in presentation form.
func (r Record) String() string {
	rdata := ""
	if r.RData != nil {
		rdata = r.RData.String()
	}
	return fmt.Sprintf("%s %d %s %s %s", r.Name, r.TTL, r.Class, r.Type, rdata)
}
