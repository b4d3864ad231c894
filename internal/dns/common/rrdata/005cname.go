package rrdata

import (
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// CNAME is the canonical name the owner is an alias for.
type CNAME struct {
	Target domain.Name
}

func (c CNAME) Type() domain.RRType { return domain.RRTypeCNAME }

func (c CNAME) Emit(enc *wire.Encoder) error { return c.Target.Emit(enc) }

func (c CNAME) Equal(other domain.RData) bool {
	o, ok := other.(CNAME)
	return ok && o.Target.Equal(c.Target)
}

func (c CNAME) String() string { return c.Target.String() }

func readCNAME(dec *wire.Decoder) (domain.RData, error) {
	target, err := domain.ReadName(dec)
	if err != nil {
		return nil, err
	}
	return CNAME{Target: target}, nil
}
