package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple domain", "example.com", "example.com"},
		{"trailing dot", "example.com.", "example.com"},
		{"multiple trailing dots", "example.com...", "example.com"},
		{"uppercase", "EXAMPLE.COM", "example.com"},
		{"mixed case with dot", "WwW.ExAmPlE.CoM.", "www.example.com"},
		{"surrounding whitespace", "  example.com \t", "example.com"},
		{"root", ".", ""},
		{"empty", "", ""},
		{"underscore labels kept", "_Dmarc.Example.com", "_dmarc.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalDNSName(tt.input))
		})
	}
}

func TestCanonicalDNSName_Idempotent(t *testing.T) {
	for _, in := range []string{"Example.COM.", " a.b.c ", ".", "xn--bcher-kva.example."} {
		once := CanonicalDNSName(in)
		assert.Equal(t, once, CanonicalDNSName(once), "input %q", in)
	}
}

func TestReverseDNSName(t *testing.T) {
	assert.Equal(t, "com.example.www", ReverseDNSName("WWW.example.com."))
	assert.Equal(t, "com", ReverseDNSName("com"))
	assert.Equal(t, "", ReverseDNSName("."))
}

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		child, parent string
		want          bool
	}{
		{"www.example.com.", "example.com", true},
		{"example.com", "Example.COM.", true},
		{"badexample.com", "example.com", false},
		{"example.com", "www.example.com", false},
		{"anything.at.all", ".", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSubdomain(tt.child, tt.parent), "%s under %s", tt.child, tt.parent)
	}
}
