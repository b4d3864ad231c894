package rrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

func TestPTR(t *testing.T) {
	p := PTR{Target: domain.MustParseName("host.example.com.")}
	_, got := encodeRead(t, p)
	assert.True(t, p.Equal(got))
	assert.Equal(t, "host.example.com.", p.String())
}

func TestPTR_SigningModeLowercases(t *testing.T) {
	signed, err := Encode(PTR{Target: domain.MustParseName("Host.Example.COM.")}, wire.ModeSigning)
	require.NoError(t, err)
	want, err := Encode(PTR{Target: domain.MustParseName("host.example.com.")}, wire.ModeNormal)
	require.NoError(t, err)
	assert.Equal(t, want, signed)
}
