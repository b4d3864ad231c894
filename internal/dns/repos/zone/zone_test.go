package zone

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/domain"
)

const testYAML = `
zone_root: example.com
ttl: 120
"@":
  SOA: ns1 hostmaster 2024010101 7200 3600 1209600 300
  NS: [ns1, ns2.example.net.]
www:
  A:
    - "192.0.2.1"
    - "192.0.2.2"
mail.sub:
  MX: "10 mx.example.com."
`

const testJSON = `{
	"zone_root": "example.org",
	"api": {
	  "AAAA": "2001:db8::1"
	}
}
`

const testTOML = `zone_root = "example.net"
[web]
A = "198.51.100.4"
TXT = ["v=spf1 -all", "hello; world"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func recordStrings(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, rr := range records {
		out[i] = rr.String()
	}
	return out
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "example.yaml", testYAML)

	root, records, err := LoadFile(path, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "example.com", root)
	assert.Equal(t, []string{
		"example.com. 120 IN NS ns1.example.com.",
		"example.com. 120 IN NS ns2.example.net.",
		"example.com. 120 IN SOA ns1.example.com. hostmaster.example.com. 2024010101 7200 3600 1209600 300",
		"mail.sub.example.com. 120 IN MX 10 mx.example.com.",
		"www.example.com. 120 IN A 192.0.2.1",
		"www.example.com. 120 IN A 192.0.2.2",
	}, recordStrings(records))
}

func TestLoadFile_JSONDefaultTTL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "example.json", testJSON)

	root, records, err := LoadFile(path, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "example.org", root)
	require.Len(t, records, 1)
	assert.Equal(t, "api.example.org. 300 IN AAAA 2001:db8::1", records[0].String())
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "example.toml", testTOML)

	_, records, err := LoadFile(path, time.Minute)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, rrdata.A{Addr: netip.MustParseAddr("198.51.100.4")}, records[0].RData)
	assert.Equal(t, rrdata.TXT{Strings: []string{"v=spf1 -all"}}, records[1].RData)
	assert.Equal(t, rrdata.TXT{Strings: []string{"hello", "world"}}, records[2].RData)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		wantMsg string
	}{
		{name: "missing root", file: "z.yaml", content: "www:\n  A: 192.0.2.1\n", wantErr: ErrMissingRoot},
		{name: "malformed", file: "z.yaml", content: "zone_root: example.com\nwww:\n\t\tA: x", wantMsg: "failed to load zone file"},
		{name: "bad value", file: "z.yaml", content: "zone_root: example.com\nwww:\n  A: not-an-ip\n", wantMsg: "invalid A record IP"},
		{name: "unknown type", file: "z.yaml", content: "zone_root: example.com\nwww:\n  BOGUS: x\n", wantMsg: "unknown record type"},
		{name: "unsupported type", file: "z.yaml", content: "zone_root: example.com\nwww:\n  RRSIG: x\n", wantErr: ErrUnsupportedType},
		{name: "negative ttl", file: "z.yaml", content: "zone_root: example.com\nttl: -1\n", wantMsg: "invalid ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, _, err := LoadFile(path, time.Minute)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zone.txt", "zone_root: example.com")
	root, records, err := LoadFile(path, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, root)
	assert.Nil(t, records)
}

func TestLoadFile_SkipsNonMapsAndEmptyValues(t *testing.T) {
	content := "zone_root: example.com\nscalar: 42\nwww:\n  A: []\n  AAAA: [\"\", 7]\n"
	path := writeFile(t, t.TempDir(), "z.yml", content)
	_, records, err := LoadFile(path, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", testYAML)
	writeFile(t, dir, "b.json", testJSON)
	writeFile(t, dir, "c.toml", testTOML)
	writeFile(t, dir, "README.txt", "ignored")

	zones, err := LoadDirectory(dir, time.Minute)
	require.NoError(t, err)
	assert.Len(t, zones, 3)
	assert.Len(t, zones["example.com"], 6)
	assert.Len(t, zones["example.org"], 1)
	assert.Len(t, zones["example.net"], 3)
}

func TestLoadDirectory_Empty(t *testing.T) {
	zones, err := LoadDirectory(t.TempDir(), time.Minute)
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestLoadDirectory_Error(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "www:\n  A: 192.0.2.1\n")
	zones, err := LoadDirectory(dir, time.Minute)
	require.ErrorIs(t, err, ErrMissingRoot)
	assert.Nil(t, zones)

	_, err = LoadDirectory(filepath.Join(dir, "missing"), time.Minute)
	assert.Error(t, err)
}

func TestExpandName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"@", "example.com."},
		{"www", "www.example.com."},
		{"a.b", "a.b.example.com."},
		{"other.net.", "other.net."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, expandName(tt.label, "example.com."), tt.label)
	}
}

func TestToStringValues(t *testing.T) {
	assert.Equal(t, []string{"x"}, toStringValues(" x "))
	assert.Nil(t, toStringValues("  "))
	assert.Equal(t, []string{"a", "b"}, toStringValues([]any{"a", 3, " ", "b"}))
	assert.Nil(t, toStringValues([]any{1, 2}))
	assert.Nil(t, toStringValues(42))
}
