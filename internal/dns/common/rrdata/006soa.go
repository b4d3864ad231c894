package rrdata

import (
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// SOA marks the start of a zone of authority (RFC 1035 section 3.3.13).
//
// Refresh, Retry and Expire are signed 32-bit intervals on the wire.
type SOA struct {
	MName   domain.Name
	RName   domain.Name
	Serial  uint32
	Refresh int32
	Retry   int32
	Expire  int32
	Minimum uint32
}

func (s SOA) Type() domain.RRType { return domain.RRTypeSOA }

func (s SOA) Emit(enc *wire.Encoder) error {
	if err := s.MName.Emit(enc); err != nil {
		return fmt.Errorf("invalid SOA mname: %w", err)
	}
	if err := s.RName.Emit(enc); err != nil {
		return fmt.Errorf("invalid SOA rname: %w", err)
	}
	enc.EmitU32(s.Serial)
	enc.EmitI32(s.Refresh)
	enc.EmitI32(s.Retry)
	enc.EmitI32(s.Expire)
	enc.EmitU32(s.Minimum)
	return nil
}

func (s SOA) Equal(other domain.RData) bool {
	o, ok := other.(SOA)
	return ok &&
		o.MName.Equal(s.MName) &&
		o.RName.Equal(s.RName) &&
		o.Serial == s.Serial &&
		o.Refresh == s.Refresh &&
		o.Retry == s.Retry &&
		o.Expire == s.Expire &&
		o.Minimum == s.Minimum
}

func (s SOA) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", s.MName, s.RName, s.Serial, s.Refresh, s.Retry, s.Expire, s.Minimum)
}

func readSOA(dec *wire.Decoder) (domain.RData, error) {
	var soa SOA
	var err error
	if soa.MName, err = domain.ReadName(dec); err != nil {
		return nil, fmt.Errorf("invalid SOA mname: %w", err)
	}
	if soa.RName, err = domain.ReadName(dec); err != nil {
		return nil, fmt.Errorf("invalid SOA rname: %w", err)
	}
	if soa.Serial, err = dec.ReadU32(); err != nil {
		return nil, err
	}
	if soa.Refresh, err = dec.ReadI32(); err != nil {
		return nil, err
	}
	if soa.Retry, err = dec.ReadI32(); err != nil {
		return nil, err
	}
	if soa.Expire, err = dec.ReadI32(); err != nil {
		return nil, err
	}
	if soa.Minimum, err = dec.ReadU32(); err != nil {
		return nil, err
	}
	return soa, nil
}
