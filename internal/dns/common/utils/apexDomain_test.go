package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetApexDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple domain with trailing dot", "example.com.", "example.com"},
		{"simple domain without trailing dot", "example.com", "example.com"},
		{"subdomain", "www.example.com.", "example.com"},
		{"deep subdomain", "api.service.Example.com", "example.com"},
		{"co.uk domain", "example.co.uk", "example.co.uk"},
		{"subdomain of co.uk", "www.example.co.uk", "example.co.uk"},
		{"github.io subdomain", "user.github.io", "user.github.io"},
		{"nested github.io", "subdomain.user.github.io", "user.github.io"},
		{"single label fallback", "localhost", "localhost"},
		{"public suffix fallback", "co.uk", "co.uk"},
		{"root", ".", ""},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetApexDomain(tt.input))
		})
	}
}
