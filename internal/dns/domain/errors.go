package domain

import "errors"

var (
	// ErrEmptyLabel is returned when a name contains two consecutive dots.
	ErrEmptyLabel = errors.New("empty label in domain name")

	// ErrLabelTooLong is returned for labels over 63 bytes (RFC 1035 section 2.3.4).
	ErrLabelTooLong = errors.New("label too long")

	// ErrNameTooLong is returned for names whose wire form exceeds 255 bytes.
	ErrNameTooLong = errors.New("domain name too long")

	// ErrBadLabelType is returned when a label length octet uses the reserved 01 or 10 prefixes.
	ErrBadLabelType = errors.New("unsupported label type")

	// ErrBadPointer is returned when a compression pointer does not point strictly backwards.
	ErrBadPointer = errors.New("invalid compression pointer")

	// ErrRDataTooLong is returned when encoded rdata does not fit in RDLENGTH.
	ErrRDataTooLong = errors.New("rdata too long")
)
