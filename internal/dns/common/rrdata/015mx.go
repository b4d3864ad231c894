package rrdata

import (
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// MX is a mail exchange with its preference.
type MX struct {
	Preference uint16
	Exchange   domain.Name
}

func (m MX) Type() domain.RRType { return domain.RRTypeMX }

func (m MX) Emit(enc *wire.Encoder) error {
	enc.EmitU16(m.Preference)
	return m.Exchange.Emit(enc)
}

func (m MX) Equal(other domain.RData) bool {
	o, ok := other.(MX)
	return ok && o.Preference == m.Preference && o.Exchange.Equal(m.Exchange)
}

func (m MX) String() string { return fmt.Sprintf("%d %s", m.Preference, m.Exchange) }

func readMX(dec *wire.Decoder) (domain.RData, error) {
	pref, err := dec.ReadU16()
	if err != nil {
		return nil, err
	}
	exchange, err := domain.ReadName(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange: %w", err)
	}
	return MX{Preference: pref, Exchange: exchange}, nil
}
