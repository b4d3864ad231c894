package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_PrimitivesRoundTrip(t *testing.T) {
	enc := NewEncoder()
	enc.Emit(0x7F)
	enc.EmitU8(0xFF)
	enc.EmitU16(0xBEEF)
	enc.EmitI32(-123456)
	enc.EmitU32(0xCAFEBABE)
	enc.EmitVec([]byte{1, 2, 3})

	buf := enc.IntoBytes()
	assert.Equal(t, []byte{
		0x7F, 0xFF,
		0xBE, 0xEF,
		0xFF, 0xFE, 0x1D, 0xC0,
		0xCA, 0xFE, 0xBA, 0xBE,
		1, 2, 3,
	}, buf)

	d := NewDecoder(buf)
	b, _ := d.Pop()
	assert.Equal(t, uint8(0x7F), b)
	u8, _ := d.ReadU8()
	assert.Equal(t, uint8(0xFF), u8)
	u16, _ := d.ReadU16()
	assert.Equal(t, uint16(0xBEEF), u16)
	i32, _ := d.ReadI32()
	assert.Equal(t, int32(-123456), i32)
	u32, _ := d.ReadU32()
	assert.Equal(t, uint32(0xCAFEBABE), u32)
	rest, err := d.ReadVec(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, rest)
	assert.True(t, d.IsEmpty())
}

func TestEncoder_CharacterData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"single", "a", false},
		{"max", strings.Repeat("x", 255), false},
		{"too long", strings.Repeat("x", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder()
			err := enc.EmitCharacterData(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrCharacterDataTooLong)
				assert.True(t, enc.IsEmpty(), "failed emit must not write")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.input)+1, enc.Len())

			got, err := NewDecoder(enc.IntoBytes()).ReadCharacterData()
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}

	enc := NewEncoder()
	require.NoError(t, enc.EmitCharacterData("abc"))
	assert.Equal(t, []byte{3, 'a', 'b', 'c'}, enc.IntoBytes())
}

func TestEncoder_Growth(t *testing.T) {
	enc := NewEncoder()
	enc.EmitU8(1)
	assert.GreaterOrEqual(t, cap(enc.buf), minGrowth)

	for i := 0; i < 5000; i++ {
		enc.EmitU16(uint16(i))
	}
	assert.Equal(t, 1+5000*2, enc.Len())
	assert.Equal(t, enc.Len(), enc.Offset())

	big := make([]byte, 4096)
	big[4095] = 0xAA
	enc.EmitVec(big)
	out := enc.IntoBytes()
	assert.Equal(t, byte(0xAA), out[len(out)-1])
}

func TestEncoder_WithOffset(t *testing.T) {
	prefix := []byte{0xAA, 0xBB}
	enc := NewEncoderWithOffset(prefix, 2, ModeNormal)
	assert.Equal(t, 2, enc.Offset())

	enc.StoreLabelPointer([]string{"example", "com"})
	enc.EmitU16(0x0102)

	ptr, ok := enc.GetLabelPointer([]string{"example", "com"})
	require.True(t, ok)
	assert.Equal(t, uint16(2), ptr)
	assert.Equal(t, []byte{0xAA, 0xBB, 0x01, 0x02}, enc.IntoBytes())

	padded := NewEncoderWithOffset(nil, 3, ModeNormal)
	padded.EmitU8(7)
	assert.Equal(t, []byte{0, 0, 0, 7}, padded.IntoBytes())
}

func TestEncoder_LabelPointers(t *testing.T) {
	enc := NewEncoder()
	enc.EmitVec(make([]byte, 12))

	enc.StoreLabelPointer([]string{"www", "example", "com"})
	ptr, ok := enc.GetLabelPointer([]string{"www", "example", "com"})
	require.True(t, ok)
	assert.Equal(t, uint16(12), ptr)

	_, ok = enc.GetLabelPointer([]string{"example", "com"})
	assert.False(t, ok, "suffixes are stored separately")

	_, ok = enc.GetLabelPointer([]string{"wwwexample", "com"})
	assert.False(t, ok, "label boundaries are part of the key")

	_, ok = enc.GetLabelPointer([]string{"WWW", "example", "com"})
	assert.False(t, ok, "keys compare by exact value")
}

func TestEncoder_LabelPointerOutOfRange(t *testing.T) {
	enc := NewEncoder()
	enc.EmitVec(make([]byte, maxPointerOffset-1))
	enc.StoreLabelPointer([]string{"below"})
	_, ok := enc.GetLabelPointer([]string{"below"})
	assert.True(t, ok)

	enc.EmitU8(0)
	enc.StoreLabelPointer([]string{"at"})
	_, ok = enc.GetLabelPointer([]string{"at"})
	assert.False(t, ok, "offset 0x3FFF is not recorded")

	enc.EmitVec(make([]byte, 100))
	enc.StoreLabelPointer([]string{"above"})
	_, ok = enc.GetLabelPointer([]string{"above"})
	assert.False(t, ok)
}

func TestEncoder_ModeAndCanonicalNames(t *testing.T) {
	enc := NewEncoder()
	assert.Equal(t, ModeNormal, enc.Mode())
	assert.False(t, enc.IsCanonicalNames())
	enc.SetCanonicalNames(true)
	assert.True(t, enc.IsCanonicalNames())

	signing := NewEncoderWithMode(ModeSigning)
	assert.Equal(t, ModeSigning, signing.Mode())
	assert.True(t, signing.IsCanonicalNames())
	assert.Equal(t, "signing", signing.Mode().String())
	assert.Equal(t, "normal", ModeNormal.String())
}

func TestEncoder_PlaceU16(t *testing.T) {
	enc := NewEncoder()
	enc.EmitU16(0)
	enc.EmitU8(9)
	require.NoError(t, enc.PlaceU16(0, 0x0A0B))
	require.ErrorIs(t, enc.PlaceU16(2, 1), ErrUnexpectedEOF)
	require.ErrorIs(t, enc.PlaceU16(-1, 1), ErrUnexpectedEOF)
	assert.Equal(t, []byte{0x0A, 0x0B, 9}, enc.IntoBytes())
}
