package rrdata

import (
	"bytes"
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// CAA restricts which certificate authorities may issue for the owner (RFC 8659).
type CAA struct {
	Flags uint8
	Tag   string
	Value []byte
}

func (c CAA) Type() domain.RRType { return domain.RRTypeCAA }

func (c CAA) Emit(enc *wire.Encoder) error {
	if c.Tag == "" {
		return fmt.Errorf("CAA tag must not be empty")
	}
	enc.EmitU8(c.Flags)
	if err := enc.EmitCharacterData(c.Tag); err != nil {
		return fmt.Errorf("invalid CAA tag: %w", err)
	}
	enc.EmitVec(c.Value)
	return nil
}

func (c CAA) Equal(other domain.RData) bool {
	o, ok := other.(CAA)
	return ok && o.Flags == c.Flags && o.Tag == c.Tag && bytes.Equal(o.Value, c.Value)
}

func (c CAA) String() string {
	return fmt.Sprintf("%d %s %q", c.Flags, c.Tag, c.Value)
}

func readCAA(dec *wire.Decoder, length int) (domain.RData, error) {
	end := dec.Index() + length
	flags, err := dec.ReadU8()
	if err != nil {
		return nil, err
	}
	tag, err := dec.ReadCharacterData()
	if err != nil {
		return nil, fmt.Errorf("invalid CAA tag: %w", err)
	}
	if tag == "" {
		return nil, fmt.Errorf("CAA tag must not be empty")
	}
	remaining := end - dec.Index()
	if remaining < 0 {
		return nil, fmt.Errorf("%w: CAA tag overruns rdata", ErrRDataLength)
	}
	value, err := dec.ReadVec(remaining)
	if err != nil {
		return nil, err
	}
	return CAA{Flags: flags, Tag: tag, Value: value}, nil
}
