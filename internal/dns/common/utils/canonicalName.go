package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot, so the root name becomes the empty string.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// ReverseDNSName returns the canonical name with its labels in reverse order,
// e.g. "www.example.com" becomes "com.example.www". Keys in this form sort every
// name of a zone next to its apex.
func ReverseDNSName(name string) string {
	name = CanonicalDNSName(name)
	if name == "" {
		return ""
	}
	labels := strings.Split(name, ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, ".")
}

// IsSubdomain reports whether child equals parent or sits below it.
// Both names are compared in canonical form; the root is the parent of every name.
func IsSubdomain(child, parent string) bool {
	child = CanonicalDNSName(child)
	parent = CanonicalDNSName(parent)
	if parent == "" || child == parent {
		return true
	}
	return strings.HasSuffix(child, "."+parent)
}
