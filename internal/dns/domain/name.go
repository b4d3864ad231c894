package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"github.com/haukened/rr-store/internal/dns/common/utils"
	"github.com/haukened/rr-store/internal/dns/gateways/wire"
)

const (
	maxLabelLength = 63
	maxNameLength  = 255
)

// Name is a domain name held as a sequence of labels, most specific first.
// The root name has no labels. Label case is preserved as received; comparisons
// with Equal ignore ASCII case as required by RFC 4343.
type Name struct {
	labels []string
	fqdn   bool
}

// Root returns the root name ".".
func Root() Name {
	return Name{fqdn: true}
}

// ParseName parses a dotted presentation name. A trailing dot marks the name as fully
// qualified. Labels containing non-ASCII characters are converted to their IDNA
// A-label form; ASCII labels are kept byte for byte.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return Root(), nil
	}
	fqdn := strings.HasSuffix(s, ".")
	s = strings.TrimSuffix(s, ".")

	raw := strings.Split(s, ".")
	labels := make([]string, 0, len(raw))
	for _, label := range raw {
		if !isASCII(label) {
			ascii, err := idna.Lookup.ToASCII(label)
			if err != nil {
				return Name{}, fmt.Errorf("invalid label %q: %w", label, err)
			}
			label = ascii
		}
		labels = append(labels, label)
	}
	return NewName(labels, fqdn)
}

// MustParseName is like ParseName but panics on error. Intended for constants and tests.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NewName builds a Name from raw labels after validating their lengths.
func NewName(labels []string, fqdn bool) (Name, error) {
	total := 1
	for _, l := range labels {
		if l == "" {
			return Name{}, ErrEmptyLabel
		}
		if len(l) > maxLabelLength {
			return Name{}, fmt.Errorf("%w: %d bytes (max %d)", ErrLabelTooLong, len(l), maxLabelLength)
		}
		total += len(l) + 1
	}
	if total > maxNameLength {
		return Name{}, fmt.Errorf("%w: %d bytes (max %d)", ErrNameTooLong, total, maxNameLength)
	}
	return Name{labels: append([]string(nil), labels...), fqdn: fqdn}, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// Labels returns a copy of the labels, most specific first.
func (n Name) Labels() []string {
	return append([]string(nil), n.labels...)
}

// NumLabels returns the number of labels, excluding the root.
func (n Name) NumLabels() int {
	return len(n.labels)
}

// IsRoot reports whether n is the root name.
func (n Name) IsRoot() bool {
	return len(n.labels) == 0
}

// IsFQDN reports whether the name is fully qualified.
func (n Name) IsFQDN() bool {
	return n.fqdn || len(n.labels) == 0
}

// Equal compares two names label by label, ignoring ASCII case.
func (n Name) Equal(other Name) bool {
	if len(n.labels) != len(other.labels) {
		return false
	}
	for i := range n.labels {
		if !strings.EqualFold(n.labels[i], other.labels[i]) {
			return false
		}
	}
	return true
}

// ToLower returns the canonical lowercase form of the name (RFC 4034 section 6.2).
func (n Name) ToLower() Name {
	labels := make([]string, len(n.labels))
	for i, l := range n.labels {
		labels[i] = strings.ToLower(l)
	}
	return Name{labels: labels, fqdn: n.fqdn}
}

// String returns the presentation form with a trailing dot.
func (n Name) String() string {
	if len(n.labels) == 0 {
		return "."
	}
	return strings.Join(n.labels, ".") + "."
}

// Key returns the canonical string used to index names in maps and stores.
func (n Name) Key() string {
	return utils.CanonicalDNSName(n.String())
}

// Emit writes the name, compressing against suffixes already present in the encoder.
// Canonical encoders receive the lowercase, uncompressed form instead.
func (n Name) Emit(enc *wire.Encoder) error {
	return n.emit(enc, !enc.IsCanonicalNames())
}

// EmitUncompressed writes the name without compression pointers, for rdata fields
// such as the RRSIG signer name or the SRV target that must never be compressed.
func (n Name) EmitUncompressed(enc *wire.Encoder) error {
	return n.emit(enc, false)
}

func (n Name) emit(enc *wire.Encoder, compress bool) error {
	labels := n.labels
	if enc.IsCanonicalNames() {
		labels = n.ToLower().labels
	}
	for i, label := range labels {
		if len(label) > maxLabelLength {
			return fmt.Errorf("%w: %q", ErrLabelTooLong, label)
		}
		if compress {
			suffix := labels[i:]
			if ptr, ok := enc.GetLabelPointer(suffix); ok {
				enc.EmitU16(0xC000 | ptr)
				return nil
			}
			enc.StoreLabelPointer(suffix)
		}
		enc.EmitU8(uint8(len(label)))
		enc.EmitVec([]byte(label))
	}
	enc.EmitU8(0)
	return nil
}

// ReadName decodes a possibly compressed name (RFC 1035 section 4.1.4).
//
// Pointers are followed on a clone of dec, so dec ends up just past the first pointer
// or the terminating root label. Every pointer must target an offset strictly before
// the label sequence that contains it, which rules out loops.
func ReadName(dec *wire.Decoder) (Name, error) {
	var labels []string
	total := 1
	cur := dec
	segmentStart := dec.Index()

	for {
		length, err := cur.ReadU8()
		if err != nil {
			return Name{}, fmt.Errorf("reading label length: %w", err)
		}

		switch length & 0xC0 {
		case 0x00:
			if length == 0 {
				return Name{labels: labels, fqdn: true}, nil
			}
			data, err := cur.ReadSlice(int(length))
			if err != nil {
				return Name{}, fmt.Errorf("reading label: %w", err)
			}
			total += int(length) + 1
			if total > maxNameLength {
				return Name{}, fmt.Errorf("%w: more than %d bytes", ErrNameTooLong, maxNameLength)
			}
			labels = append(labels, string(data))
		case 0xC0:
			low, err := cur.ReadU8()
			if err != nil {
				return Name{}, fmt.Errorf("reading compression pointer: %w", err)
			}
			ptr := int(length&0x3F)<<8 | int(low)
			if ptr >= segmentStart {
				return Name{}, fmt.Errorf("%w: offset %d is not before %d", ErrBadPointer, ptr, segmentStart)
			}
			segmentStart = ptr
			cur = cur.CloneAt(ptr)
		default:
			return Name{}, fmt.Errorf("%w: 0x%02x", ErrBadLabelType, length)
		}
	}
}
