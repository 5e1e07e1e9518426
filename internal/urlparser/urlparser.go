// Package urlparser normalizes a user-supplied domain or URL into its
// scheme, authority, domain, path and query components.
package urlparser

import (
	"fmt"
	"regexp"
	"strings"
)

// rfc3986Enhanced splits a URI into scheme/authority/path/query/fragment,
// mirroring the permissive RFC 3986 appendix-B grammar.
var rfc3986Enhanced = regexp.MustCompile(
	`^(?:(?P<scheme>[^:/?#\s]+):)?(?://(?P<authority>[^/?#\s]*))?(?P<path>[^?#\s]*)(?:\?(?P<query>[^#\s]*))?(?:#(?P<fragment>\S*))?$`,
)

// validDomain matches a syntactically valid ASCII-compatible domain name:
// 1-63 char LDH labels that neither start nor end with a hyphen, followed by
// a 2-63 char alphabetic TLD, with an optional trailing dot, 4-253 chars
// overall.
var validDomain = regexp.MustCompile(`(?i)^(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)\.)+[a-z]{2,63}\.?$`)

// ParsedURL holds the decomposed form of a user-supplied domain or URL.
type ParsedURL struct {
	Scheme    string
	Authority string
	Domain    string
	Path      string
	Query     string
}

// Parse normalizes input into its scheme/authority/domain/path/query parts.
// If input lacks a "://" separator, "http://" is prepended before parsing.
// The domain is lowercased, stripped of any ":port" suffix, and validated;
// an invalid domain returns an error.
func Parse(input string) (*ParsedURL, error) {
	raw := input
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	m := rfc3986Enhanced.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("urlparser: could not parse %q", input)
	}

	groups := make(map[string]string, len(m))
	for i, name := range rfc3986Enhanced.SubexpNames() {
		if name != "" && i < len(m) {
			groups[name] = m[i]
		}
	}

	p := &ParsedURL{}

	if scheme := groups["scheme"]; scheme != "" {
		if scheme == "http" || scheme == "https" {
			p.Scheme = scheme
		} else {
			p.Scheme = "http"
		}
	} else {
		p.Scheme = "http"
	}

	if authority := groups["authority"]; authority != "" {
		p.Authority = authority
		host := strings.ToLower(strings.Split(authority, ":")[0])
		if !validDomain.MatchString(host) || len(host) > 253 {
			return nil, fmt.Errorf("urlparser: invalid domain name %q", host)
		}
		p.Domain = host
	} else {
		return nil, fmt.Errorf("urlparser: invalid domain name %q", input)
	}

	p.Path = groups["path"]
	if q := groups["query"]; q != "" {
		p.Query = "?" + q
	}

	return p, nil
}

// GetFullURI reassembles scheme://domain<path><?query>.
func (p *ParsedURL) GetFullURI() string {
	return p.Scheme + "://" + p.Domain + p.Path + p.Query
}
