// Package rrdata implements the typed payloads of DNS resource records and their
// wire codecs. Every type satisfies domain.RData.
package rrdata

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// ErrRDataLength is returned when a payload does not consume exactly RDLENGTH bytes.
var ErrRDataLength = errors.New("rdata length mismatch")

// Opaque carries the payload of a record type without a dedicated codec (RFC 3597).
type Opaque struct {
	RRType domain.RRType
	Data   []byte
}

func (o Opaque) Type() domain.RRType { return o.RRType }

func (o Opaque) Emit(enc *wire.Encoder) error {
	enc.EmitVec(o.Data)
	return nil
}

func (o Opaque) Equal(other domain.RData) bool {
	x, ok := other.(Opaque)
	return ok && x.RRType == o.RRType && bytes.Equal(x.Data, o.Data)
}

// String uses the RFC 3597 generic presentation form.
func (o Opaque) String() string {
	return fmt.Sprintf("\\# %d %x", len(o.Data), o.Data)
}

func readOpaque(dec *wire.Decoder, rrType domain.RRType, length int) (domain.RData, error) {
	data, err := dec.ReadVec(length)
	if err != nil {
		return nil, err
	}
	return Opaque{RRType: rrType, Data: data}, nil
}
