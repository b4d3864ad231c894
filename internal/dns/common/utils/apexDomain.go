package utils

import "golang.org/x/net/publicsuffix"

// GetApexDomain returns the registrable domain (eTLD+1) owning name, in canonical form.
// Names the public suffix list cannot split, such as single labels, are returned as is.
func GetApexDomain(name string) string {
	name = CanonicalDNSName(name)
	if name == "" {
		return ""
	}
	apexDomain, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return apexDomain
}
