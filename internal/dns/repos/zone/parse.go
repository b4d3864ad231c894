package zone

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
)

// ErrUnsupportedType is returned for record types that zone definitions cannot carry.
var ErrUnsupportedType = errors.New("record type not supported in zone definitions")

// ParseRData parses the presentation form of a single value. Relative names are
// qualified against origin.
func ParseRData(rrType domain.RRType, text, origin string) (domain.RData, error) {
	fields := strings.Fields(text)
	switch rrType {
	case domain.RRTypeA:
		addr, err := netip.ParseAddr(text)
		if err != nil || !addr.Is4() {
			return nil, fmt.Errorf("invalid A record IP: %s", text)
		}
		return rrdata.A{Addr: addr}, nil
	case domain.RRTypeAAAA:
		addr, err := netip.ParseAddr(text)
		if err != nil || !addr.Is6() {
			return nil, fmt.Errorf("invalid AAAA record IP: %s", text)
		}
		return rrdata.AAAA{Addr: addr}, nil
	case domain.RRTypeNS:
		host, err := parseName(text, origin)
		if err != nil {
			return nil, err
		}
		return rrdata.NS{Host: host}, nil
	case domain.RRTypeCNAME:
		target, err := parseName(text, origin)
		if err != nil {
			return nil, err
		}
		return rrdata.CNAME{Target: target}, nil
	case domain.RRTypePTR:
		target, err := parseName(text, origin)
		if err != nil {
			return nil, err
		}
		return rrdata.PTR{Target: target}, nil
	case domain.RRTypeMX:
		return parseMX(fields, origin)
	case domain.RRTypeTXT:
		return parseTXT(text)
	case domain.RRTypeSOA:
		return parseSOA(fields, origin)
	case domain.RRTypeSRV:
		return parseSRV(fields, origin)
	case domain.RRTypeCAA:
		return parseCAA(fields)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rrType)
	}
}

func parseName(s, origin string) (domain.Name, error) {
	n, err := domain.ParseName(expandName(s, origin))
	if err != nil {
		return domain.Name{}, fmt.Errorf("invalid name %q: %w", s, err)
	}
	return n, nil
}

func parseUint(s string, bits int, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return v, nil
}

// parseMX expects "preference exchange".
func parseMX(fields []string, origin string) (domain.RData, error) {
	if len(fields) != 2 {
		return nil, fmt.Errorf("invalid MX record format (expected: preference exchange): %q", strings.Join(fields, " "))
	}
	pref, err := parseUint(fields[0], 16, "MX preference")
	if err != nil {
		return nil, err
	}
	exchange, err := parseName(fields[1], origin)
	if err != nil {
		return nil, err
	}
	return rrdata.MX{Preference: uint16(pref), Exchange: exchange}, nil
}

// parseTXT splits the value on semicolons into character-strings.
func parseTXT(text string) (domain.RData, error) {
	var segments []string
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if len(segment) > 255 {
			return nil, fmt.Errorf("TXT segment too long: %d bytes", len(segment))
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return nil, errors.New("TXT record must contain at least one segment")
	}
	return rrdata.TXT{Strings: segments}, nil
}

// parseSOA expects "mname rname serial refresh retry expire minimum".
func parseSOA(fields []string, origin string) (domain.RData, error) {
	if len(fields) != 7 {
		return nil, fmt.Errorf("invalid SOA record format (expected 7 fields, got %d)", len(fields))
	}
	mname, err := parseName(fields[0], origin)
	if err != nil {
		return nil, err
	}
	rname, err := parseName(fields[1], origin)
	if err != nil {
		return nil, err
	}
	var timers [5]uint32
	for i := range timers {
		v, err := parseUint(fields[i+2], 32, fmt.Sprintf("SOA field %d", i+2))
		if err != nil {
			return nil, err
		}
		timers[i] = uint32(v)
	}
	return rrdata.SOA{
		MName:   mname,
		RName:   rname,
		Serial:  timers[0],
		Refresh: timers[1],
		Retry:   timers[2],
		Expire:  timers[3],
		Minimum: timers[4],
	}, nil
}

// parseSRV expects "priority weight port target".
func parseSRV(fields []string, origin string) (domain.RData, error) {
	if len(fields) != 4 {
		return nil, fmt.Errorf("invalid SRV record format (expected 4 fields, got %d)", len(fields))
	}
	var nums [3]uint16
	for i := range nums {
		v, err := parseUint(fields[i], 16, fmt.Sprintf("SRV field %d", i))
		if err != nil {
			return nil, err
		}
		nums[i] = uint16(v)
	}
	target, err := parseName(fields[3], origin)
	if err != nil {
		return nil, err
	}
	return rrdata.SRV{Priority: nums[0], Weight: nums[1], Port: nums[2], Target: target}, nil
}

// parseCAA expects `flags tag "value"`.
func parseCAA(fields []string) (domain.RData, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("invalid CAA record format (expected: flags tag \"value\"): %q", strings.Join(fields, " "))
	}
	flags, err := parseUint(fields[0], 8, "CAA flags")
	if err != nil {
		return nil, err
	}
	tag := fields[1]
	if len(tag) > 255 {
		return nil, errors.New("CAA tag too long")
	}
	value := strings.Trim(strings.Join(fields[2:], " "), "\"")
	return rrdata.CAA{Flags: uint8(flags), Tag: tag, Value: []byte(value)}, nil
}
