package rrdata

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

func TestAAAA(t *testing.T) {
	a := AAAA{Addr: netip.MustParseAddr("2001:db8::1")}
	b, got := encodeRead(t, a)
	assert.Equal(t, []byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, b)
	assert.Equal(t, a, got)
	assert.Equal(t, "2001:db8::1", a.String())
}

func TestAAAA_EmitErrors(t *testing.T) {
	tests := []struct {
		name string
		addr netip.Addr
	}{
		{"zero", netip.Addr{}},
		{"ipv4", netip.MustParseAddr("192.0.2.1")},
		{"mapped ipv4", netip.MustParseAddr("::ffff:192.0.2.1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(AAAA{Addr: tt.addr}, wire.ModeNormal)
			assert.Error(t, err)
		})
	}
}
