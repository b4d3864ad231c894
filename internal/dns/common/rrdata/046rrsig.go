package rrdata

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// RRSIG is a DNSSEC signature over an RRset (RFC 4034 section 3).
//
// Only the record is modelled here; computing and verifying Signature is the job
// of the signer.
type RRSIG struct {
	TypeCovered domain.RRType
	Algorithm   domain.Algorithm
	Labels      uint8
	OriginalTTL uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  domain.Name
	Signature   []byte
}

func (s RRSIG) Type() domain.RRType { return domain.RRTypeRRSIG }

// Emit writes the signature record. The signer name is never compressed
// (RFC 4034 section 3.1.7) and is lowercased in canonical mode.
func (s RRSIG) Emit(enc *wire.Encoder) error {
	s.emitPrefix(enc)
	if err := s.SignerName.EmitUncompressed(enc); err != nil {
		return fmt.Errorf("invalid RRSIG signer name: %w", err)
	}
	enc.EmitVec(s.Signature)
	return nil
}

// EmitSignedPrefix writes the RRSIG rdata without the signature field. A signer
// prepends this to the canonical RRset to form the signed data (RFC 4034 section 3.1.8.1).
func (s RRSIG) EmitSignedPrefix(enc *wire.Encoder) error {
	s.emitPrefix(enc)
	return s.SignerName.EmitUncompressed(enc)
}

func (s RRSIG) emitPrefix(enc *wire.Encoder) {
	enc.EmitU16(uint16(s.TypeCovered))
	enc.EmitU8(uint8(s.Algorithm))
	enc.EmitU8(s.Labels)
	enc.EmitU32(s.OriginalTTL)
	enc.EmitU32(s.Expiration)
	enc.EmitU32(s.Inception)
	enc.EmitU16(s.KeyTag)
}

func (s RRSIG) Equal(other domain.RData) bool {
	o, ok := other.(RRSIG)
	return ok &&
		o.TypeCovered == s.TypeCovered &&
		o.Algorithm == s.Algorithm &&
		o.Labels == s.Labels &&
		o.OriginalTTL == s.OriginalTTL &&
		o.Expiration == s.Expiration &&
		o.Inception == s.Inception &&
		o.KeyTag == s.KeyTag &&
		o.SignerName.Equal(s.SignerName) &&
		bytes.Equal(o.Signature, s.Signature)
}

func (s RRSIG) String() string {
	return fmt.Sprintf("%s %d %d %d %d %d %d %s %s",
		s.TypeCovered, s.Algorithm, s.Labels, s.OriginalTTL, s.Expiration, s.Inception,
		s.KeyTag, s.SignerName, base64.StdEncoding.EncodeToString(s.Signature))
}

func readRRSIG(dec *wire.Decoder, length int) (domain.RData, error) {
	end := dec.Index() + length
	var sig RRSIG

	covered, err := dec.ReadU16()
	if err != nil {
		return nil, err
	}
	sig.TypeCovered = domain.RRType(covered)

	alg, err := dec.ReadU8()
	if err != nil {
		return nil, err
	}
	sig.Algorithm = domain.Algorithm(alg)

	if sig.Labels, err = dec.ReadU8(); err != nil {
		return nil, err
	}
	if sig.OriginalTTL, err = dec.ReadU32(); err != nil {
		return nil, err
	}
	if sig.Expiration, err = dec.ReadU32(); err != nil {
		return nil, err
	}
	if sig.Inception, err = dec.ReadU32(); err != nil {
		return nil, err
	}
	if sig.KeyTag, err = dec.ReadU16(); err != nil {
		return nil, err
	}
	if sig.SignerName, err = domain.ReadName(dec); err != nil {
		return nil, fmt.Errorf("invalid RRSIG signer name: %w", err)
	}

	remaining := end - dec.Index()
	if remaining < 0 {
		return nil, fmt.Errorf("%w: RRSIG signer name overruns rdata", ErrRDataLength)
	}
	if sig.Signature, err = dec.ReadVec(remaining); err != nil {
		return nil, err
	}
	return sig, nil
}
