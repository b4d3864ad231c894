package rrdata

import (
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// PTR points to another location in the name space, typically for reverse lookups.
type PTR struct {
	Target domain.Name
}

func (p PTR) Type() domain.RRType { return domain.RRTypePTR }

func (p PTR) Emit(enc *wire.Encoder) error { return p.Target.Emit(enc) }

func (p PTR) Equal(other domain.RData) bool {
	o, ok := other.(PTR)
	return ok && o.Target.Equal(p.Target)
}

func (p PTR) String() string { return p.Target.String() }

func readPTR(dec *wire.Decoder) (domain.RData, error) {
	target, err := domain.ReadName(dec)
	if err != nil {
		return nil, err
	}
	return PTR{Target: target}, nil
}
