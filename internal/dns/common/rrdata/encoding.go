package rrdata

import (
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// Encode returns the wire form of a single payload using a fresh encoder in mode.
// Compression never applies across calls, so the result is self-contained.
func Encode(rdata domain.RData, mode wire.EncodeMode) ([]byte, error) {
	enc := wire.NewEncoderWithMode(mode)
	if err := rdata.Emit(enc); err != nil {
		return nil, err
	}
	return enc.IntoBytes(), nil
}

// SOASerial returns the serial of an SOA payload. ok is false for any other payload.
func SOASerial(rdata domain.RData) (serial uint32, ok bool) {
	soa, ok := rdata.(SOA)
	if !ok {
		return 0, false
	}
	return soa.Serial, true
}

// SignatureAlgorithm returns the algorithm of an RRSIG payload. ok is false for any other payload.
func SignatureAlgorithm(rdata domain.RData) (alg domain.Algorithm, ok bool) {
	sig, ok := rdata.(RRSIG)
	if !ok {
		return 0, false
	}
	return sig.Algorithm, true
}
