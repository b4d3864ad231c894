package rrdata

import (
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// NS names an authoritative name server for the owner.
type NS struct {
	Host domain.Name
}

func (n NS) Type() domain.RRType { return domain.RRTypeNS }

func (n NS) Emit(enc *wire.Encoder) error { return n.Host.Emit(enc) }

func (n NS) Equal(other domain.RData) bool {
	o, ok := other.(NS)
	return ok && o.Host.Equal(n.Host)
}

func (n NS) String() string { return n.Host.String() }

func readNS(dec *wire.Decoder) (domain.RData, error) {
	host, err := domain.ReadName(dec)
	if err != nil {
		return nil, err
	}
	return NS{Host: host}, nil
}
