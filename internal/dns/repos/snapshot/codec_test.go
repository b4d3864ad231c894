package snapshot

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

func mxSet(t *testing.T) *rrset.RecordSet {
	t.Helper()
	name := domain.MustParseName("Example.com.")
	set := rrset.New(name, domain.RRTypeMX, 0)
	for i, host := range []string{"mx1.example.com.", "mx2.example.com."} {
		rr := domain.NewRecord(name, 3600, rrdata.MX{Preference: uint16(10 * (i + 1)), Exchange: domain.MustParseName(host)})
		require.True(t, set.Insert(rr, 2024060101))
	}
	set.InsertRRSIG(domain.NewRecord(name, 3600, rrdata.RRSIG{
		TypeCovered: domain.RRTypeMX,
		Algorithm:   domain.AlgorithmECDSAP256SHA256,
		Labels:      2,
		OriginalTTL: 3600,
		Expiration:  1720000000,
		Inception:   1710000000,
		KeyTag:      4242,
		SignerName:  domain.MustParseName("example.com."),
		Signature:   []byte{1, 2, 3, 4, 5},
	}))
	return set
}

func TestEncodeDecodeSet(t *testing.T) {
	set := mxSet(t)

	b, err := EncodeSet(set)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, b[0])

	got, err := DecodeSet(b)
	require.NoError(t, err)
	assert.True(t, set.Equal(got), "want %s, got %s", set, got)
	assert.Equal(t, "Example.com.", got.Name().String(), "owner case is preserved")
}

func TestEncodeDecodeSet_SOAAndOpaque(t *testing.T) {
	name := domain.MustParseName("example.org.")
	soa := rrset.FromRecord(domain.NewRecord(name, 300, rrdata.SOA{
		MName:  domain.MustParseName("ns.example.org."),
		RName:  domain.MustParseName("admin.example.org."),
		Serial: 7,
	}))
	opaque := rrset.FromRecord(domain.NewRecord(name, 60, rrdata.Opaque{RRType: domain.RRType(65400), Data: []byte{0xAA}}))

	for _, set := range []*rrset.RecordSet{soa, opaque} {
		b, err := EncodeSet(set)
		require.NoError(t, err)
		got, err := DecodeSet(b)
		require.NoError(t, err)
		assert.True(t, set.Equal(got))
	}
}

func TestDecodeSet_Errors(t *testing.T) {
	valid, err := EncodeSet(mxSet(t))
	require.NoError(t, err)

	t.Run("every truncation fails", func(t *testing.T) {
		for i := 0; i < len(valid); i++ {
			_, err := DecodeSet(valid[:i])
			assert.ErrorIs(t, err, ErrCorrupt, "prefix of %d bytes", i)
		}
	})

	t.Run("unknown version", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 99
		_, err := DecodeSet(bad)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := DecodeSet(append(append([]byte(nil), valid...), 0))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("record count beyond data", func(t *testing.T) {
		enc := wire.NewEncoder()
		enc.EmitU8(FormatVersion)
		require.NoError(t, domain.Root().Emit(enc))
		enc.EmitU16(uint16(domain.RRTypeA))
		enc.EmitU16(uint16(domain.RRClassIN))
		enc.EmitU32(0)
		enc.EmitU32(0)
		enc.EmitU16(0xFFFF)
		_, err := DecodeSet(enc.IntoBytes())
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("record of another type", func(t *testing.T) {
		enc := wire.NewEncoder()
		enc.EmitU8(FormatVersion)
		name := domain.MustParseName("example.com.")
		require.NoError(t, name.Emit(enc))
		enc.EmitU16(uint16(domain.RRTypeAAAA))
		enc.EmitU16(uint16(domain.RRClassIN))
		enc.EmitU32(0)
		enc.EmitU32(0)
		enc.EmitU16(1)
		require.NoError(t, domain.NewRecord(name, 1, rrdata.A{Addr: netip.MustParseAddr("192.0.2.1")}).Emit(enc))
		enc.EmitU16(0)
		_, err := DecodeSet(enc.IntoBytes())
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.ErrorIs(t, err, rrset.ErrInvalidSet)
	})
}
