package domain

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Algorithm is a DNSSEC algorithm number from the IANA registry.
type Algorithm uint8

// DNSSEC algorithm constants
const (
	AlgorithmRSASHA1         Algorithm = 5
	AlgorithmRSASHA1NSEC3    Algorithm = 7
	AlgorithmRSASHA256       Algorithm = 8
	AlgorithmRSASHA512       Algorithm = 10
	AlgorithmECDSAP256SHA256 Algorithm = 13
	AlgorithmECDSAP384SHA384 Algorithm = 14
	AlgorithmED25519         Algorithm = 15
	AlgorithmED448           Algorithm = 16
)

var algorithmNames = map[Algorithm]string{
	AlgorithmRSASHA1:         "RSASHA1",
	AlgorithmRSASHA1NSEC3:    "RSASHA1-NSEC3-SHA1",
	AlgorithmRSASHA256:       "RSASHA256",
	AlgorithmRSASHA512:       "RSASHA512",
	AlgorithmECDSAP256SHA256: "ECDSAP256SHA256",
	AlgorithmECDSAP384SHA384: "ECDSAP384SHA384",
	AlgorithmED25519:         "ED25519",
	AlgorithmED448:           "ED448",
}

// String returns the IANA mnemonic, or the number for unassigned algorithms.
func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ALG%d", uint8(a))
}

// IsKnown reports whether a is one of the algorithms listed above.
func (a Algorithm) IsKnown() bool {
	_, ok := algorithmNames[a]
	return ok
}

// SupportedAlgorithms is the set of DNSSEC algorithms a client understands, as
// signalled with the RFC 6975 DAU option. The empty set means the client did not
// signal anything, which disables signature filtering.
//
// The zero value is an empty set. Copies share storage; use Clone before Set on a copy.
type SupportedAlgorithms struct {
	bits *bitset.BitSet
}

// NewSupportedAlgorithms returns a set holding algs.
func NewSupportedAlgorithms(algs ...Algorithm) SupportedAlgorithms {
	s := SupportedAlgorithms{bits: bitset.New(256)}
	for _, a := range algs {
		s.Set(a)
	}
	return s
}

// AllSupportedAlgorithms returns a set holding every known algorithm.
func AllSupportedAlgorithms() SupportedAlgorithms {
	s := NewSupportedAlgorithms()
	for a := range algorithmNames {
		s.Set(a)
	}
	return s
}

// SupportedAlgorithmsFromDAU builds a set from the algorithm codes of a DAU option.
// Codes for unknown algorithms are ignored.
func SupportedAlgorithmsFromDAU(codes []byte) SupportedAlgorithms {
	s := NewSupportedAlgorithms()
	for _, c := range codes {
		if a := Algorithm(c); a.IsKnown() {
			s.Set(a)
		}
	}
	return s
}

// Set adds a to the set.
func (s *SupportedAlgorithms) Set(a Algorithm) {
	if s.bits == nil {
		s.bits = bitset.New(256)
	}
	s.bits.Set(uint(a))
}

// Has reports whether a is in the set.
func (s SupportedAlgorithms) Has(a Algorithm) bool {
	return s.bits != nil && s.bits.Test(uint(a))
}

// IsEmpty reports whether no algorithm is set.
func (s SupportedAlgorithms) IsEmpty() bool {
	return s.bits == nil || s.bits.None()
}

// Len returns the number of algorithms in the set.
func (s SupportedAlgorithms) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Clone returns an independent copy of the set.
func (s SupportedAlgorithms) Clone() SupportedAlgorithms {
	if s.bits == nil {
		return SupportedAlgorithms{}
	}
	return SupportedAlgorithms{bits: s.bits.Clone()}
}

// Algorithms returns the members in ascending numeric order.
func (s SupportedAlgorithms) Algorithms() []Algorithm {
	if s.bits == nil {
		return nil
	}
	out := make([]Algorithm, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		//gosec:disable G115 -- only values below 256 are ever set.
		out = append(out, Algorithm(i))
	}
	return out
}

// DAU returns the set as the algorithm code list of a DAU option.
func (s SupportedAlgorithms) DAU() []byte {
	algs := s.Algorithms()
	out := make([]byte, len(algs))
	for i, a := range algs {
		out[i] = byte(a)
	}
	return out
}

// String lists the member mnemonics.
func (s SupportedAlgorithms) String() string {
	algs := s.Algorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = a.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
