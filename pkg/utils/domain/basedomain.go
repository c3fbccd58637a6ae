package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDomain is returned for names that have no registrable base domain:
// empty strings, IP addresses, names with empty labels or embedded whitespace
// and control characters, or bare public suffixes.
var ErrInvalidDomain = errors.New("invalid domain")

// DomainBreakdown splits a name into its public suffix, registrable base and subdomain.
type DomainBreakdown struct {
	Domain       string `json:"domain"`
	BaseDomain   string `json:"base_domain"`
	PublicSuffix string `json:"public_suffix"`
	Subdomain    string `json:"subdomain,omitempty"`
	ICANN        bool   `json:"icann"`
}

// Normalize lower-cases a name and strips surrounding whitespace and a single trailing dot.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".")
}

// BaseDomain reduces a name to its registrable domain (eTLD+1) using the public
// suffix list, so "www.example.co.uk" becomes "example.co.uk".
// The result is stable under repeated application.
func BaseDomain(name string) (string, error) {
	host, err := validate(name)
	if err != nil {
		return "", err
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDomain, name, err)
	}
	return base, nil
}

// Breakdown returns the public suffix, base domain and subdomain part of name.
func Breakdown(name string) (*DomainBreakdown, error) {
	host, err := validate(name)
	if err != nil {
		return nil, err
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidDomain, name, err)
	}
	suffix, icann := publicsuffix.PublicSuffix(host)

	breakdown := &DomainBreakdown{
		Domain:       host,
		BaseDomain:   base,
		PublicSuffix: suffix,
		ICANN:        icann,
	}
	if sub := strings.TrimSuffix(host, "."+base); sub != host {
		breakdown.Subdomain = sub
	}
	return breakdown, nil
}

func validate(name string) (string, error) {
	host := Normalize(name)
	switch {
	case host == "":
		return "", fmt.Errorf("%w: empty name", ErrInvalidDomain)
	case net.ParseIP(host) != nil:
		return "", fmt.Errorf("%w %q: IP addresses have no base domain", ErrInvalidDomain, name)
	case strings.ContainsFunc(host, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }):
		return "", fmt.Errorf("%w %q: whitespace or control character", ErrInvalidDomain, name)
	case strings.ContainsAny(host, "/:@?#"):
		return "", fmt.Errorf("%w %q: unexpected character", ErrInvalidDomain, name)
	case strings.HasPrefix(host, ".") || strings.Contains(host, ".."):
		return "", fmt.Errorf("%w %q: empty label", ErrInvalidDomain, name)
	}
	return host, nil
}
