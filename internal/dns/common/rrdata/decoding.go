package rrdata

import (
	"fmt"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

// Read decodes a payload of the given type occupying exactly length bytes.
// Types without a dedicated codec are returned as Opaque.
func Read(dec *wire.Decoder, rrType domain.RRType, length uint16) (domain.RData, error) {
	n := int(length)
	if n > dec.Len() {
		return nil, fmt.Errorf("%s rdata: %w: need %d bytes, %d remaining", rrType, wire.ErrUnexpectedEOF, n, dec.Len())
	}
	start := dec.Index()

	var (
		rdata domain.RData
		err   error
	)
	switch rrType {
	case domain.RRTypeA: // 1
		rdata, err = readA(dec)
	case domain.RRTypeNS: // 2
		rdata, err = readNS(dec)
	case domain.RRTypeCNAME: // 5
		rdata, err = readCNAME(dec)
	case domain.RRTypeSOA: // 6
		rdata, err = readSOA(dec)
	case domain.RRTypePTR: // 12
		rdata, err = readPTR(dec)
	case domain.RRTypeMX: // 15
		rdata, err = readMX(dec)
	case domain.RRTypeTXT: // 16
		rdata, err = readTXT(dec, n)
	case domain.RRTypeAAAA: // 28
		rdata, err = readAAAA(dec)
	case domain.RRTypeSRV: // 33
		rdata, err = readSRV(dec)
	case domain.RRTypeRRSIG: // 46
		rdata, err = readRRSIG(dec, n)
	case domain.RRTypeCAA: // 257
		rdata, err = readCAA(dec, n)
	default:
		rdata, err = readOpaque(dec, rrType, n)
	}
	if err != nil {
		return nil, fmt.Errorf("%s rdata: %w", rrType, err)
	}
	if consumed := dec.Index() - start; consumed != n {
		return nil, fmt.Errorf("%s rdata: %w: consumed %d of %d bytes", rrType, ErrRDataLength, consumed, n)
	}
	return rdata, nil
}

// ReadRecord decodes one resource record (RFC 1035 section 4.1.3).
// An RDLENGTH of zero yields a record with nil RData, as used by RFC 2136 deletes.
func ReadRecord(dec *wire.Decoder) (domain.Record, error) {
	name, err := domain.ReadName(dec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to decode record name: %w", err)
	}
	rrType, err := dec.ReadU16()
	if err != nil {
		return domain.Record{}, fmt.Errorf("truncated record type: %w", err)
	}
	class, err := dec.ReadU16()
	if err != nil {
		return domain.Record{}, fmt.Errorf("truncated record class: %w", err)
	}
	ttl, err := dec.ReadU32()
	if err != nil {
		return domain.Record{}, fmt.Errorf("truncated record ttl: %w", err)
	}
	length, err := dec.ReadU16()
	if err != nil {
		return domain.Record{}, fmt.Errorf("truncated rdlength: %w", err)
	}

	rr := domain.Record{
		Name:  name,
		Type:  domain.RRType(rrType),
		Class: domain.RRClass(class),
		TTL:   ttl,
	}
	if length == 0 {
		return rr, nil
	}
	if rr.RData, err = Read(dec, rr.Type, length); err != nil {
		return domain.Record{}, err
	}
	return rr, nil
}
