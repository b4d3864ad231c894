package rrdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

func TestTXT(t *testing.T) {
	txt := TXT{Strings: []string{"ab", ""}}
	b, got := encodeRead(t, txt)
	assert.Equal(t, []byte{2, 'a', 'b', 0}, b)
	assert.True(t, txt.Equal(got))
	assert.Equal(t, `"ab" ""`, txt.String())
	assert.False(t, TXT{Strings: []string{"a"}}.Equal(TXT{Strings: []string{"A"}}))
}

func TestTXT_Errors(t *testing.T) {
	_, err := Encode(TXT{Strings: []string{strings.Repeat("x", 256)}}, wire.ModeNormal)
	require.ErrorIs(t, err, wire.ErrCharacterDataTooLong)

	_, err = Read(wire.NewDecoder([]byte{1, 'a', 2, 'b', 'c'}), domain.RRTypeTXT, 3)
	require.ErrorIs(t, err, ErrRDataLength)
}
