// Package canonical builds the RFC 4034 section 6.3 canonical form of record sets,
// the byte sequence a DNSSEC signer covers.
package canonical

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/haukened/rr-store/internal/dns/common/log"
	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

// ErrMismatch is returned by Verify when the canonical bytes do not decode back to the set.
var ErrMismatch = errors.New("canonical form does not match record set")

// Service produces canonical record set bytes, caching the sorted rdata per set version.
type Service struct {
	cache Cache
}

// New returns a Service backed by cache. A nil cache disables caching.
func New(cache Cache) *Service {
	if cache == nil {
		cache = disabledCache{}
	}
	return &Service{cache: cache}
}

// Stats returns the cache counters.
func (s *Service) Stats() (hits, misses, evictions uint64) {
	return s.cache.Stats()
}

func cacheKey(set *rrset.RecordSet) string {
	return fmt.Sprintf("%s|%s|%d", set.Name().Key(), set.RecordType(), set.Version())
}

// sortedRData returns the canonical rdata of every record, sorted as unsigned octet
// strings with duplicates removed (RFC 4034 section 6.3).
func (s *Service) sortedRData(set *rrset.RecordSet) ([][]byte, error) {
	key := cacheKey(set)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	records := set.RecordsWithoutRRSIGs()
	out := make([][]byte, 0, len(records))
	for _, rr := range records {
		if rr.RData == nil {
			out = append(out, []byte{})
			continue
		}
		b, err := rrdata.Encode(rr.RData, wire.ModeSigning)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", rr, err)
		}
		out = append(out, b)
	}
	slices.SortFunc(out, bytes.Compare)
	out = slices.CompactFunc(out, bytes.Equal)

	s.cache.Put(key, out)
	return out, nil
}

// RRSet returns the canonical wire form of the set's records. Each record carries the
// set ttl and the lowercased owner name. An empty set yields no bytes.
func (s *Service) RRSet(set *rrset.RecordSet) ([]byte, error) {
	sorted, err := s.sortedRData(set)
	if err != nil {
		return nil, err
	}
	enc := wire.NewEncoderWithMode(wire.ModeSigning)
	if err := emitRecords(enc, set.Name(), set.RecordType(), set.DNSClass(), set.TTL(), sorted); err != nil {
		return nil, err
	}
	return enc.IntoBytes(), nil
}

// SignedData returns the data covered by sig over set (RFC 4034 section 3.1.8.1): the
// RRSIG rdata without the signature, then the canonical records with the original ttl.
// When sig.Labels is smaller than the owner's label count the owner is written as the
// wildcard it was expanded from.
func (s *Service) SignedData(set *rrset.RecordSet, sig rrdata.RRSIG) ([]byte, error) {
	if sig.TypeCovered != set.RecordType() {
		return nil, fmt.Errorf("signature covers %s, set holds %s", sig.TypeCovered, set.RecordType())
	}
	sorted, err := s.sortedRData(set)
	if err != nil {
		return nil, err
	}

	owner, err := signedOwner(set.Name(), sig.Labels)
	if err != nil {
		return nil, err
	}

	enc := wire.NewEncoderWithMode(wire.ModeSigning)
	if err := sig.EmitSignedPrefix(enc); err != nil {
		return nil, err
	}
	if err := emitRecords(enc, owner, set.RecordType(), set.DNSClass(), sig.OriginalTTL, sorted); err != nil {
		return nil, err
	}
	return enc.IntoBytes(), nil
}

func signedOwner(name domain.Name, labels uint8) (domain.Name, error) {
	n := name.NumLabels()
	if int(labels) >= n {
		return name, nil
	}
	all := name.Labels()
	return domain.NewName(append([]string{"*"}, all[n-int(labels):]...), true)
}

func emitRecords(enc *wire.Encoder, owner domain.Name, rrType domain.RRType, class domain.RRClass, ttl uint32, sorted [][]byte) error {
	for _, rdata := range sorted {
		if err := owner.Emit(enc); err != nil {
			return fmt.Errorf("encoding owner name: %w", err)
		}
		enc.EmitU16(uint16(rrType))
		enc.EmitU16(uint16(class))
		enc.EmitU32(ttl)
		if len(rdata) > 0xFFFF {
			return fmt.Errorf("%w: %d bytes", domain.ErrRDataTooLong, len(rdata))
		}
		//gosec:disable G115 -- bounded by the check above.
		enc.EmitU16(uint16(len(rdata)))
		enc.EmitVec(rdata)
	}
	return nil
}

// Verify encodes set in canonical form and decodes it again, checking that every
// decoded record belongs to the set and that no distinct record was lost.
func (s *Service) Verify(set *rrset.RecordSet) error {
	buf, err := s.RRSet(set)
	if err != nil {
		return err
	}
	sorted, err := s.sortedRData(set)
	if err != nil {
		return err
	}

	records := set.RecordsWithoutRRSIGs()
	owner := set.Name().ToLower().String()
	dec := wire.NewDecoder(buf)
	decoded := 0
	for !dec.IsEmpty() {
		rr, err := rrdata.ReadRecord(dec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMismatch, err)
		}
		if rr.Name.String() != owner || rr.Type != set.RecordType() || rr.Class != set.DNSClass() || rr.TTL != set.TTL() {
			return fmt.Errorf("%w: unexpected header %s", ErrMismatch, rr)
		}
		if !slices.ContainsFunc(records, func(r domain.Record) bool { return domain.RDataEqual(r.RData, rr.RData) }) {
			return fmt.Errorf("%w: unknown record %s", ErrMismatch, rr)
		}
		decoded++
	}
	if decoded != len(sorted) {
		log.Debug(map[string]any{
			"name":    set.Name().String(),
			"type":    set.RecordType().String(),
			"decoded": decoded,
			"want":    len(sorted),
		}, "canonical record count differs")
		return fmt.Errorf("%w: decoded %d of %d records", ErrMismatch, decoded, len(sorted))
	}
	return nil
}
