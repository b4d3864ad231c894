package rrdata

import (
	"fmt"
	"net/netip"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// A is an IPv4 host address.
type A struct {
	Addr netip.Addr
}

func (a A) Type() domain.RRType { return domain.RRTypeA }

func (a A) Emit(enc *wire.Encoder) error {
	if !a.Addr.Is4() {
		return fmt.Errorf("A record requires an IPv4 address, got %s", a.Addr)
	}
	b := a.Addr.As4()
	enc.EmitVec(b[:])
	return nil
}

func (a A) Equal(other domain.RData) bool {
	o, ok := other.(A)
	return ok && o.Addr == a.Addr
}

func (a A) String() string { return a.Addr.String() }

func readA(dec *wire.Decoder) (domain.RData, error) {
	b, err := dec.ReadSlice(4)
	if err != nil {
		return nil, err
	}
	return A{Addr: netip.AddrFrom4([4]byte(b))}, nil
}
