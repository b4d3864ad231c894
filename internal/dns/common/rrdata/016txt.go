package rrdata

import (
	"slices"
	"strconv"
	"strings"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// TXT holds one or more character-strings (RFC 1035 section 3.3.14).
type TXT struct {
	Strings []string
}

func (t TXT) Type() domain.RRType { return domain.RRTypeTXT }

func (t TXT) Emit(enc *wire.Encoder) error {
	for _, s := range t.Strings {
		if err := enc.EmitCharacterData(s); err != nil {
			return err
		}
	}
	return nil
}

func (t TXT) Equal(other domain.RData) bool {
	o, ok := other.(TXT)
	return ok && slices.Equal(o.Strings, t.Strings)
}

func (t TXT) String() string {
	quoted := make([]string, len(t.Strings))
	for i, s := range t.Strings {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}

func readTXT(dec *wire.Decoder, length int) (domain.RData, error) {
	end := dec.Index() + length
	var out []string
	for dec.Index() < end {
		s, err := dec.ReadCharacterData()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return TXT{Strings: out}, nil
}
