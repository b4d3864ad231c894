package rrdata

import (
	"fmt"
	"net/netip"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// AAAA is an IPv6 host address.
type AAAA struct {
	Addr netip.Addr
}

func (a AAAA) Type() domain.RRType { return domain.RRTypeAAAA }

func (a AAAA) Emit(enc *wire.Encoder) error {
	if !a.Addr.Is6() || a.Addr.Is4In6() {
		return fmt.Errorf("AAAA record requires an IPv6 address, got %s", a.Addr)
	}
	b := a.Addr.As16()
	enc.EmitVec(b[:])
	return nil
}

func (a AAAA) Equal(other domain.RData) bool {
	o, ok := other.(AAAA)
	return ok && o.Addr == a.Addr
}

func (a AAAA) String() string { return a.Addr.String() }

func readAAAA(dec *wire.Decoder) (domain.RData, error) {
	b, err := dec.ReadSlice(16)
	if err != nil {
		return nil, err
	}
	return AAAA{Addr: netip.AddrFrom16([16]byte(b))}, nil
}
