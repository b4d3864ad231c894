package snapshot

import (
	"errors"
	"fmt"

	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

// FormatVersion is the first byte of every encoded set.
const FormatVersion uint8 = 1

var (
	// ErrUnsupportedVersion is returned for sets written by an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot format version")

	// ErrCorrupt is returned for encoded sets with trailing or inconsistent data.
	ErrCorrupt = errors.New("corrupt snapshot entry")
)

// EncodeSet serialises a set as: version, owner name, type, class, ttl, serial,
// record count, records, signature count, signatures. Records use the RFC 1035
// resource record layout and share one compression table.
func EncodeSet(set *rrset.RecordSet) ([]byte, error) {
	enc := wire.NewEncoder()
	enc.EmitU8(FormatVersion)
	if err := set.Name().Emit(enc); err != nil {
		return nil, fmt.Errorf("encoding set name: %w", err)
	}
	enc.EmitU16(uint16(set.RecordType()))
	enc.EmitU16(uint16(set.DNSClass()))
	enc.EmitU32(set.TTL())
	enc.EmitU32(set.Serial())

	if err := emitRecords(enc, set.RecordsWithoutRRSIGs()); err != nil {
		return nil, err
	}
	if err := emitRecords(enc, set.RRSIGs()); err != nil {
		return nil, err
	}
	return enc.IntoBytes(), nil
}

func emitRecords(enc *wire.Encoder, records []domain.Record) error {
	if len(records) > 0xFFFF {
		return fmt.Errorf("%w: %d records in one set", ErrCorrupt, len(records))
	}
	//gosec:disable G115 -- bounded by the check above.
	enc.EmitU16(uint16(len(records)))
	for _, rr := range records {
		if err := rr.Emit(enc); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSet is the inverse of EncodeSet. Every failure other than
// ErrUnsupportedVersion matches ErrCorrupt.
func DecodeSet(b []byte) (*rrset.RecordSet, error) {
	set, err := decodeSet(b)
	if err != nil && !errors.Is(err, ErrCorrupt) && !errors.Is(err, ErrUnsupportedVersion) {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return set, err
}

func decodeSet(b []byte) (*rrset.RecordSet, error) {
	dec := wire.NewDecoder(b)

	version, err := dec.ReadU8()
	if err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	name, err := domain.ReadName(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding set name: %w", err)
	}
	rrType, err := dec.ReadU16()
	if err != nil {
		return nil, err
	}
	class, err := dec.ReadU16()
	if err != nil {
		return nil, err
	}
	ttl, err := dec.ReadU32()
	if err != nil {
		return nil, err
	}
	serial, err := dec.ReadU32()
	if err != nil {
		return nil, err
	}

	records, err := readRecords(dec)
	if err != nil {
		return nil, err
	}
	rrsigs, err := readRecords(dec)
	if err != nil {
		return nil, err
	}
	if !dec.IsEmpty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, dec.Len())
	}

	set, err := rrset.Restore(name, domain.RRType(rrType), domain.RRClass(class), ttl, serial, records, rrsigs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return set, nil
}

func readRecords(dec *wire.Decoder) ([]domain.Record, error) {
	count, err := dec.ReadU16()
	if err != nil {
		return nil, err
	}
	// every record needs at least 11 bytes, which bounds the allocation
	if int(count)*11 > dec.Len() {
		return nil, fmt.Errorf("%w: %d records cannot fit in %d bytes", ErrCorrupt, count, dec.Len())
	}
	records := make([]domain.Record, 0, count)
	for i := 0; i < int(count); i++ {
		rr, err := rrdata.ReadRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rr)
	}
	return records, nil
}
