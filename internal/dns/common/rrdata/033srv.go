package rrdata

import (
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// SRV locates a service (RFC 2782). The target is never compressed.
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   domain.Name
}

func (s SRV) Type() domain.RRType { return domain.RRTypeSRV }

func (s SRV) Emit(enc *wire.Encoder) error {
	enc.EmitU16(s.Priority)
	enc.EmitU16(s.Weight)
	enc.EmitU16(s.Port)
	return s.Target.EmitUncompressed(enc)
}

func (s SRV) Equal(other domain.RData) bool {
	o, ok := other.(SRV)
	return ok && o.Priority == s.Priority && o.Weight == s.Weight && o.Port == s.Port && o.Target.Equal(s.Target)
}

func (s SRV) String() string {
	return fmt.Sprintf("%d %d %d %s", s.Priority, s.Weight, s.Port, s.Target)
}

func readSRV(dec *wire.Decoder) (domain.RData, error) {
	var srv SRV
	var err error
	if srv.Priority, err = dec.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Weight, err = dec.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Port, err = dec.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Target, err = domain.ReadName(dec); err != nil {
		return nil, fmt.Errorf("invalid SRV target: %w", err)
	}
	return srv, nil
}
