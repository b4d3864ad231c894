// Package zone loads structured zone definitions from YAML, JSON and TOML files and
// turns them into records.
//
// A definition names its apex with zone_root and maps owner labels to record types:
//
//	zone_root: example.com
//	ttl: 300
//	"@":
//	  SOA: ns1 hostmaster 2024010101 7200 3600 1209600 300
//	  NS: [ns1, ns2]
//	www:
//	  A: [192.0.2.1, 192.0.2.2]
//
// Owner names and names inside values are relative to zone_root unless they end in
// a dot; "@" is the apex itself.
package zone

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-store/internal/dns/common/utils"
	"github.com/haukened/rr-store/internal/dns/domain"
)

// ErrMissingRoot is returned for definitions without a zone_root key.
var ErrMissingRoot = errors.New("zone definition missing 'zone_root'")

const (
	keyRoot = "zone_root"
	keyTTL  = "ttl"
)

// LoadDirectory walks dir, loading every supported definition, and returns the
// records grouped by canonical zone root. Files with other extensions are skipped.
func LoadDirectory(dir string, defaultTTL time.Duration) (map[string][]domain.Record, error) {
	zones := make(map[string][]domain.Record)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		root, records, err := LoadFile(path, defaultTTL)
		if err != nil {
			return err
		}
		if root != "" && len(records) > 0 {
			zones[root] = append(zones[root], records...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return nil
	}
}

// LoadFile loads a single definition and returns its canonical zone root and records,
// ordered by owner label and type. Unsupported file types yield an empty root and no error.
func LoadFile(path string, defaultTTL time.Duration) (string, []domain.Record, error) {
	parser := parserFor(path)
	if parser == nil {
		return "", nil, nil
	}

	// owner names contain dots, so keys are only split on '/'
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return "", nil, fmt.Errorf("failed to load zone file %s: %w", path, err)
	}

	root := utils.CanonicalDNSName(k.String(keyRoot))
	if root == "" {
		return "", nil, fmt.Errorf("%s: %w", path, ErrMissingRoot)
	}
	origin := root + "."

	ttl := uint32(defaultTTL / time.Second)
	if k.Exists(keyTTL) {
		v := k.Int64(keyTTL)
		if v < 0 || v > 0x7FFFFFFF {
			return "", nil, fmt.Errorf("%s: invalid ttl %d", path, v)
		}
		ttl = uint32(v)
	}

	raw := k.Raw()
	var records []domain.Record
	for _, label := range slices.Sorted(maps.Keys(raw)) {
		if label == keyRoot || label == keyTTL {
			continue
		}
		types, ok := raw[label].(map[string]any)
		if !ok {
			continue
		}
		owner, err := domain.ParseName(expandName(label, origin))
		if err != nil {
			return "", nil, fmt.Errorf("%s: owner %q: %w", path, label, err)
		}
		for _, mnemonic := range slices.Sorted(maps.Keys(types)) {
			values := toStringValues(types[mnemonic])
			if len(values) == 0 {
				continue
			}
			recs, err := buildRecords(owner, mnemonic, values, ttl, origin)
			if err != nil {
				return "", nil, fmt.Errorf("invalid record in %s: %w", path, err)
			}
			records = append(records, recs...)
		}
	}
	return root, records, nil
}

// expandName qualifies label against origin, which must end in a dot.
func expandName(label, origin string) string {
	if label == "@" {
		return origin
	}
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "." + origin
}

// toStringValues accepts a string or a list and returns the non-empty strings.
// Other types yield nil.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func buildRecords(owner domain.Name, mnemonic string, values []string, ttl uint32, origin string) ([]domain.Record, error) {
	rrType := domain.RRTypeFromString(mnemonic)
	if rrType == 0 {
		return nil, fmt.Errorf("%s: unknown record type %q", owner, mnemonic)
	}
	records := make([]domain.Record, 0, len(values))
	for _, s := range values {
		rdata, err := ParseRData(rrType, s, origin)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", owner, rrType, err)
		}
		records = append(records, domain.NewRecord(owner, ttl, rdata))
	}
	return records, nil
}
