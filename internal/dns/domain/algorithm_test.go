package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportedAlgorithms_ZeroValue(t *testing.T) {
	var s SupportedAlgorithms
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Has(AlgorithmED25519))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Algorithms())
	assert.Equal(t, "{}", s.String())

	s.Set(AlgorithmED25519)
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Has(AlgorithmED25519))
}

func TestSupportedAlgorithms_SetAndList(t *testing.T) {
	s := NewSupportedAlgorithms(AlgorithmED25519, AlgorithmRSASHA256, AlgorithmECDSAP384SHA384)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []Algorithm{AlgorithmRSASHA256, AlgorithmECDSAP384SHA384, AlgorithmED25519}, s.Algorithms())
	assert.Equal(t, []byte{8, 14, 15}, s.DAU())
	assert.Equal(t, "{RSASHA256, ECDSAP384SHA384, ED25519}", s.String())
	assert.False(t, s.Has(AlgorithmECDSAP256SHA256))
}

func TestSupportedAlgorithms_FromDAU(t *testing.T) {
	s := SupportedAlgorithmsFromDAU([]byte{13, 15, 200, 1})
	assert.Equal(t, []Algorithm{AlgorithmECDSAP256SHA256, AlgorithmED25519}, s.Algorithms())
}

func TestSupportedAlgorithms_Clone(t *testing.T) {
	s := NewSupportedAlgorithms(AlgorithmRSASHA256)
	c := s.Clone()
	c.Set(AlgorithmED448)
	assert.False(t, s.Has(AlgorithmED448))
	assert.True(t, c.Has(AlgorithmED448))
}

func TestSupportedAlgorithms_All(t *testing.T) {
	s := AllSupportedAlgorithms()
	for a := range algorithmNames {
		assert.True(t, s.Has(a), a.String())
	}
	assert.Equal(t, len(algorithmNames), s.Len())
}

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "ECDSAP256SHA256", AlgorithmECDSAP256SHA256.String())
	assert.Equal(t, "ALG200", Algorithm(200).String())
	assert.True(t, AlgorithmED448.IsKnown())
	assert.False(t, Algorithm(1).IsKnown())
}
