package utils

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// lookupProfile maps names the way a resolver client needs: Unicode names
// become punycode and uppercase ASCII folds to lowercase, but strict LDH
// validation stays off so service names like _sip._tcp.example.com survive.
var lookupProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
)

// CanonicalDNSName returns a DNS name in canonical query form:
// - IDNA-mapped to ASCII (punycode) and lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot; the root zone alone is spelled "."
func CanonicalDNSName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("empty domain name")
	}
	if trimmed == "." {
		return ".", nil
	}
	trimmed = strings.TrimRight(trimmed, ".")
	if trimmed == "" {
		return "", fmt.Errorf("domain name %q has no labels", name)
	}
	ascii, err := lookupProfile.ToASCII(trimmed)
	if err != nil {
		return "", fmt.Errorf("domain name %q: %w", name, err)
	}
	return ascii, nil
}
