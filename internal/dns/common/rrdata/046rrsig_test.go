package rrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

func TestRRSIG(t *testing.T) {
	sig := sampleRRSIG()
	b, got := encodeRead(t, sig)
	assert.Len(t, b, 18+13+4)
	assert.True(t, sig.Equal(got))
	assert.Equal(t, "A 13 2 3600 1700000000 1690000000 12345 example.com. 3q2+7w==", sig.String())

	other := sig
	other.Signature = []byte{0}
	assert.False(t, sig.Equal(other))
}

func TestRRSIG_SignerNameNotCompressed(t *testing.T) {
	sig := sampleRRSIG()
	sig.Signature = []byte{1, 2, 3}
	rr := domain.NewRecord(owner, 300, sig)

	enc := wire.NewEncoder()
	require.NoError(t, rr.Emit(enc))

	// owner(13) + fixed(10) + rrsig fixed(18) + signer(13) + signature(3)
	assert.Equal(t, 57, enc.Len())
}

func TestRRSIG_EmitSignedPrefix(t *testing.T) {
	sig := sampleRRSIG()
	full, err := Encode(sig, wire.ModeNormal)
	require.NoError(t, err)

	enc := wire.NewEncoder()
	require.NoError(t, sig.EmitSignedPrefix(enc))
	assert.Equal(t, full[:len(full)-len(sig.Signature)], enc.IntoBytes())
}

func TestRRSIG_SignerOverrunsRData(t *testing.T) {
	full, err := Encode(sampleRRSIG(), wire.ModeNormal)
	require.NoError(t, err)

	_, err = Read(wire.NewDecoder(full), domain.RRTypeRRSIG, 20)
	require.ErrorIs(t, err, ErrRDataLength)
}
