package domain

import (
	"fmt"
	"strings"
)

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA      RRType = 1   // A - IPv4 address
	RRTypeNS     RRType = 2   // NS - Name server
	RRTypeCNAME  RRType = 5   // CNAME - Canonical name
	RRTypeSOA    RRType = 6   // SOA - Start of authority
	RRTypePTR    RRType = 12  // PTR - Pointer
	RRTypeMX     RRType = 15  // MX - Mail exchange
	RRTypeTXT    RRType = 16  // TXT - Text
	RRTypeSIG    RRType = 24  // SIG - Signature (SIG(0) transactions)
	RRTypeAAAA   RRType = 28  // AAAA - IPv6 address
	RRTypeSRV    RRType = 33  // SRV - Service
	RRTypeOPT    RRType = 41  // OPT - EDNS option
	RRTypeDS     RRType = 43  // DS - Delegation signer
	RRTypeRRSIG  RRType = 46  // RRSIG - Resource record signature
	RRTypeNSEC   RRType = 47  // NSEC - Next secure
	RRTypeDNSKEY RRType = 48  // DNSKEY - DNS key
	RRTypeNSEC3  RRType = 50  // NSEC3 - Hashed next secure
	RRTypeAXFR   RRType = 252 // AXFR - Full zone transfer (query only)
	RRTypeIXFR   RRType = 251 // IXFR - Incremental zone transfer (query only)
	RRTypeANY    RRType = 255 // ANY - Any type (query and update only)
	RRTypeCAA    RRType = 257 // CAA - Certificate authority authorization
)

var rrTypeNames = map[RRType]string{
	RRTypeA:      "A",
	RRTypeNS:     "NS",
	RRTypeCNAME:  "CNAME",
	RRTypeSOA:    "SOA",
	RRTypePTR:    "PTR",
	RRTypeMX:     "MX",
	RRTypeTXT:    "TXT",
	RRTypeSIG:    "SIG",
	RRTypeAAAA:   "AAAA",
	RRTypeSRV:    "SRV",
	RRTypeOPT:    "OPT",
	RRTypeDS:     "DS",
	RRTypeRRSIG:  "RRSIG",
	RRTypeNSEC:   "NSEC",
	RRTypeDNSKEY: "DNSKEY",
	RRTypeNSEC3:  "NSEC3",
	RRTypeIXFR:   "IXFR",
	RRTypeAXFR:   "AXFR",
	RRTypeANY:    "ANY",
	RRTypeCAA:    "CAA",
}

// IsValid returns true if the RRType is one of the known types.
func (t RRType) IsValid() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// IsDNSSEC reports whether t is one of the DNSSEC record types.
func (t RRType) IsDNSSEC() bool {
	switch t {
	case RRTypeDS, RRTypeRRSIG, RRTypeNSEC, RRTypeDNSKEY, RRTypeNSEC3, RRTypeSIG:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRType.
// Unknown types use the RFC 3597 "TYPE<n>" form.
func (t RRType) String() string {
	if s, ok := rrTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// RRTypeFromString converts a record type mnemonic to its RRType value.
// It returns 0 for unknown mnemonics.
func RRTypeFromString(s string) RRType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range rrTypeNames {
		if name == s {
			return t
		}
	}
	return 0
}
