// Package rrset holds the set of records sharing one owner name, type and class,
// together with the signatures covering them.
//
// A RecordSet is a plain value with no internal locking. Callers sharing one across
// goroutines must serialise mutations themselves (see the zonestore package).
package rrset

import (
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/haukened/rr-store/internal/dns/common/log"
	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
)

// ErrInvalidSOAUpdate is returned by InsertChecked when an SOA set is offered a record
// that does not carry SOA rdata.
var ErrInvalidSOAUpdate = errors.New("invalid SOA update")

// ErrStaleSerial is returned by InsertChecked when an SOA update does not advance the zone serial.
var ErrStaleSerial = errors.New("SOA serial not newer than current")

// RecordSet is an RRset: every record shares Name, Type and Class. Serial records the
// zone serial at which the set last changed.
type RecordSet struct {
	name    domain.Name
	rrType  domain.RRType
	class   domain.RRClass
	ttl     uint32
	records []domain.Record
	rrsigs  []domain.Record
	serial  uint32
	version uint64
}

// versions hands out content versions; they are unique across all sets in the process.
var versions atomic.Uint64

func nextVersion() uint64 { return versions.Add(1) }

// New returns an empty IN-class set.
func New(name domain.Name, rrType domain.RRType, serial uint32) *RecordSet {
	return &RecordSet{
		name:    name,
		rrType:  rrType,
		class:   domain.RRClassIN,
		serial:  serial,
		version: nextVersion(),
	}
}

// WithTTL returns an empty IN-class set with the given ttl and serial 0.
func WithTTL(name domain.Name, rrType domain.RRType, ttl uint32) *RecordSet {
	return &RecordSet{
		name:    name,
		rrType:  rrType,
		class:   domain.RRClassIN,
		ttl:     ttl,
		version: nextVersion(),
	}
}

// FromRecord returns a set seeded with rr, taking its name, type, class and ttl.
func FromRecord(rr domain.Record) *RecordSet {
	return &RecordSet{
		name:    rr.Name,
		rrType:  rr.Type,
		class:   rr.Class,
		ttl:     rr.TTL,
		records: []domain.Record{rr},
		version: nextVersion(),
	}
}

// ErrInvalidSet is returned by Restore for records that cannot belong to the set.
var ErrInvalidSet = errors.New("invalid record set")

// Restore rebuilds a set exactly as it was persisted, bypassing the update rules.
// Records must match name and type and SOA or CNAME sets hold at most one record;
// rrsigs must be RRSIG records at the same name.
func Restore(name domain.Name, rrType domain.RRType, class domain.RRClass, ttl, serial uint32,
	records, rrsigs []domain.Record) (*RecordSet, error) {
	for _, rr := range records {
		if !rr.Name.Equal(name) || rr.Type != rrType {
			return nil, fmt.Errorf("%w: %s %s record in %s %s set", ErrInvalidSet, rr.Name, rr.Type, name, rrType)
		}
	}
	if (rrType == domain.RRTypeSOA || rrType == domain.RRTypeCNAME) && len(records) > 1 {
		return nil, fmt.Errorf("%w: %d %s records", ErrInvalidSet, len(records), rrType)
	}
	for _, rr := range rrsigs {
		if !rr.Name.Equal(name) || rr.Type != domain.RRTypeRRSIG {
			return nil, fmt.Errorf("%w: %s %s record among signatures", ErrInvalidSet, rr.Name, rr.Type)
		}
	}
	return &RecordSet{
		name:    name,
		rrType:  rrType,
		class:   class,
		ttl:     ttl,
		records: append([]domain.Record(nil), records...),
		rrsigs:  append([]domain.Record(nil), rrsigs...),
		serial:  serial,
		version: nextVersion(),
	}, nil
}

// Name is the owner name shared by every record.
func (s *RecordSet) Name() domain.Name { return s.name }

// RecordType is the type shared by every record.
func (s *RecordSet) RecordType() domain.RRType { return s.rrType }

// DNSClass is the class of the set, IN unless changed with SetDNSClass.
func (s *RecordSet) DNSClass() domain.RRClass { return s.class }

// TTL is the ttl of the most recently inserted record, or the last SetTTL value.
func (s *RecordSet) TTL() uint32 { return s.ttl }

// Serial is the zone serial at which the set last changed.
func (s *RecordSet) Serial() uint32 { return s.serial }

// Version identifies the current content of the records, ttl and class. It changes on
// every such mutation, unlike Serial which callers supply. Signatures do not affect it.
func (s *RecordSet) Version() uint64 { return s.version }

// IsEmpty reports whether the set holds no records. Signatures are not counted.
func (s *RecordSet) IsEmpty() bool { return len(s.records) == 0 }

// Len returns the number of records, excluding signatures.
func (s *RecordSet) Len() int { return len(s.records) }

// RRSIGs returns a copy of the stored signatures.
func (s *RecordSet) RRSIGs() []domain.Record {
	return append([]domain.Record(nil), s.rrsigs...)
}

// RecordsWithoutRRSIGs returns a copy of the stored records.
func (s *RecordSet) RecordsWithoutRRSIGs() []domain.Record {
	return append([]domain.Record(nil), s.records...)
}

// SetTTL sets the ttl of the set and of every stored record.
func (s *RecordSet) SetTTL(ttl uint32) {
	s.ttl = ttl
	for i := range s.records {
		s.records[i].TTL = ttl
	}
	s.version = nextVersion()
}

// SetDNSClass sets the class of the set and of every stored record.
func (s *RecordSet) SetDNSClass(class domain.RRClass) {
	s.class = class
	for i := range s.records {
		s.records[i].Class = class
	}
	s.version = nextVersion()
}

// Records returns RecordsWithRRSIGs(algs) when withRRSIGs is set, RecordsWithoutRRSIGs otherwise.
func (s *RecordSet) Records(withRRSIGs bool, algs domain.SupportedAlgorithms) []domain.Record {
	if withRRSIGs {
		return s.RecordsWithRRSIGs(algs)
	}
	return s.RecordsWithoutRRSIGs()
}

// RecordsWithRRSIGs returns the records followed by signatures chosen per RFC 6975.
//
// An empty algs means the client did not signal, so every signature is returned.
// Otherwise at most one signature is appended: the one with the highest algorithm
// number that algs contains. When nothing matches the records are returned unsigned.
func (s *RecordSet) RecordsWithRRSIGs(algs domain.SupportedAlgorithms) []domain.Record {
	out := make([]domain.Record, 0, len(s.records)+len(s.rrsigs))
	out = append(out, s.records...)
	if algs.IsEmpty() {
		return append(out, s.rrsigs...)
	}

	best := -1
	var bestAlg domain.Algorithm
	for i, sig := range s.rrsigs {
		alg, ok := rrdata.SignatureAlgorithm(sig.RData)
		if !ok || !algs.Has(alg) {
			continue
		}
		if best < 0 || alg >= bestAlg {
			best, bestAlg = i, alg
		}
	}
	if best >= 0 {
		out = append(out, s.rrsigs[best])
	}
	return out
}

// All yields the records followed by the signatures, in storage order.
func (s *RecordSet) All() iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		for _, rr := range s.records {
			if !yield(rr) {
				return
			}
		}
		for _, rr := range s.rrsigs {
			if !yield(rr) {
				return
			}
		}
	}
}

// InsertRRSIG appends a signature without validating it against the records.
func (s *RecordSet) InsertRRSIG(rrsig domain.Record) {
	s.rrsigs = append(s.rrsigs, rrsig)
}

// ClearRRSIGs drops every signature.
func (s *RecordSet) ClearRRSIGs() {
	s.rrsigs = nil
}

func (s *RecordSet) updated(serial uint32) {
	s.serial = serial
	s.rrsigs = nil
	s.version = nextVersion()
}

func (s *RecordSet) mustMatch(rr domain.Record, allowAny bool) {
	if !rr.Name.Equal(s.name) {
		panic(fmt.Sprintf("rrset: record name %s does not match set name %s", rr.Name, s.name))
	}
	if rr.Type != s.rrType && !(allowAny && rr.Type == domain.RRTypeANY) {
		panic(fmt.Sprintf("rrset: record type %s does not match set type %s", rr.Type, s.rrType))
	}
}

// Insert adds rr following the RFC 2136 section 1.1.5 replacement rules and reports
// whether the set changed. serial is the current zone serial and becomes the set's
// serial on success. Rejected SOA updates are logged and return false.
//
// Insert panics if rr's name or type differ from the set's.
func (s *RecordSet) Insert(rr domain.Record, serial uint32) bool {
	changed, err := s.InsertChecked(rr, serial)
	switch {
	case errors.Is(err, ErrStaleSerial):
		log.Debug(map[string]any{
			"name":   s.name.String(),
			"record": rr.String(),
		}, "update ignored, SOA serial out of date")
	case err != nil:
		log.Warn(map[string]any{
			"name":  s.name.String(),
			"error": err.Error(),
		}, "wrong rdata for SOA update")
	}
	return changed
}

// InsertChecked is Insert with the SOA rejections reported as errors
// (ErrStaleSerial, ErrInvalidSOAUpdate) instead of being logged.
func (s *RecordSet) InsertChecked(rr domain.Record, serial uint32) (bool, error) {
	s.mustMatch(rr, false)

	switch rr.Type {
	case domain.RRTypeSOA:
		// only one SOA per zone, compared on the serial alone
		incoming, ok := rrdata.SOASerial(rr.RData)
		if !ok {
			return false, fmt.Errorf("%w: got %T", ErrInvalidSOAUpdate, rr.RData)
		}
		if len(s.records) > 0 {
			current, ok := rrdata.SOASerial(s.records[0].RData)
			if !ok {
				return false, fmt.Errorf("%w: stored record holds %T", ErrInvalidSOAUpdate, s.records[0].RData)
			}
			if incoming <= current {
				return false, fmt.Errorf("%w: %d <= %d", ErrStaleSerial, incoming, current)
			}
		}
		s.records = s.records[:0]
	case domain.RRTypeCNAME:
		s.records = s.records[:0]
	}

	// every record sharing the rdata is replaced, unless all of them already equal rr
	var matches []int
	identical := true
	for i, existing := range s.records {
		if !domain.RDataEqual(existing.RData, rr.RData) {
			continue
		}
		matches = append(matches, i)
		identical = identical && existing.Equal(rr)
	}
	if len(matches) > 0 && identical {
		return false, nil
	}
	for _, i := range matches {
		s.records[i] = rr
	}
	if len(matches) == 0 {
		s.records = append(s.records, rr)
	}

	s.ttl = rr.TTL
	s.updated(serial)
	return true, nil
}

// Remove deletes every record whose rdata equals rr's and reports whether anything
// was removed. rr may be typed ANY. The last NS record and SOA records are never removed.
//
// Remove panics if rr's name differs from the set's, or its type differs and is not ANY.
func (s *RecordSet) Remove(rr domain.Record, serial uint32) bool {
	s.mustMatch(rr, true)

	if s.rrType == domain.RRTypeSOA {
		log.Debug(map[string]any{"name": s.name.String()}, "ignored delete of SOA")
		return false
	}

	kept := make([]domain.Record, 0, len(s.records))
	for _, existing := range s.records {
		if !domain.RDataEqual(existing.RData, rr.RData) {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(s.records) {
		return false
	}
	if s.rrType == domain.RRTypeNS && len(kept) == 0 {
		log.Debug(map[string]any{
			"name":   s.name.String(),
			"record": rr.String(),
		}, "ignoring delete of last NS record")
		return false
	}

	s.records = kept
	s.updated(serial)
	return true
}

// NewRecord builds a record from the set's name, type, class and ttl plus rdata,
// inserts it with serial 0 and returns the stored record.
//
// NewRecord panics if rdata is of another type or the stored record cannot be found.
func (s *RecordSet) NewRecord(rdata domain.RData) domain.Record {
	if rdata.Type() != s.rrType {
		panic(fmt.Sprintf("rrset: rdata type %s does not match set type %s", rdata.Type(), s.rrType))
	}
	rr := domain.Record{
		Name:  s.name,
		Type:  s.rrType,
		Class: s.class,
		TTL:   s.ttl,
		RData: rdata,
	}
	s.Insert(rr, 0)

	for _, stored := range s.records {
		if domain.RDataEqual(stored.RData, rdata) {
			return stored
		}
	}
	panic(fmt.Sprintf("rrset: inserted %s rdata not found in set %s", s.rrType, s.name))
}

// Clone returns a copy with its own slices and the same Version; records themselves are values.
func (s *RecordSet) Clone() *RecordSet {
	c := *s
	c.records = append([]domain.Record(nil), s.records...)
	c.rrsigs = append([]domain.Record(nil), s.rrsigs...)
	return &c
}

// Equal reports whether two sets hold the same identity, ttl, serial, records and
// signatures. Version is not compared.
func (s *RecordSet) Equal(other *RecordSet) bool {
	if s == nil || other == nil {
		return s == other
	}
	if !s.name.Equal(other.name) || s.rrType != other.rrType || s.class != other.class ||
		s.ttl != other.ttl || s.serial != other.serial ||
		len(s.records) != len(other.records) || len(s.rrsigs) != len(other.rrsigs) {
		return false
	}
	for i := range s.records {
		if !s.records[i].Equal(other.records[i]) {
			return false
		}
	}
	for i := range s.rrsigs {
		if !s.rrsigs[i].Equal(other.rrsigs[i]) {
			return false
		}
	}
	return true
}

func (s *RecordSet) String() string {
	return fmt.Sprintf("%s %s %s ttl=%d serial=%d records=%d rrsigs=%d",
		s.name, s.class, s.rrType, s.ttl, s.serial, len(s.records), len(s.rrsigs))
}
