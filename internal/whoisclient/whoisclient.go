// Package whoisclient implements capability.WHOIS over github.com/likexian/whois
// and github.com/likexian/whois-parser, with a line-scanning fallback for
// registries whose response the structured parser cannot handle.
package whoisclient

import (
	"strings"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// Client performs a single best-effort WHOIS lookup per call. It carries no
// state between calls; the underlying library opens a fresh TCP connection
// to the relevant WHOIS server each time.
type Client struct{}

// NewClient builds a WHOIS client using the host's default WHOIS resolution
// (IANA referral chain followed by the likexian/whois library).
func NewClient() *Client {
	return &Client{}
}

// Lookup returns the domain's creation and last-updated dates, in whatever
// granularity the registry reports. Either may be empty when the registry
// omits it or when only the raw-text fallback parser matched.
func (c *Client) Lookup(domain string) (created, updated string, err error) {
	raw, err := whois.Whois(domain)
	if err != nil {
		return "", "", err
	}

	parsed, perr := whoisparser.Parse(raw)
	if perr == nil && parsed.Domain != nil {
		created = formatDate(parsed.Domain.CreatedDate)
		updated = formatDate(parsed.Domain.UpdatedDate)
		if created != "" || updated != "" {
			return created, updated, nil
		}
	}

	created, updated = scanRaw(raw)
	return created, updated, nil
}

// scanRaw handles registries (e.g. ccTLDs with bespoke templates) that
// whois-parser does not recognize, by scanning for the handful of label
// spellings the reference tool looks for.
func scanRaw(raw string) (created, updated string) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case created == "" && hasAnyPrefix(lower, "creation date:", "created:", "registered:", "created on:"):
			created = formatDate(valueAfterColon(line))
		case updated == "" && hasAnyPrefix(lower, "updated date:", "last updated:", "changed:", "modified:"):
			updated = formatDate(valueAfterColon(line))
		}
	}
	return created, updated
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func valueAfterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 || idx == len(line)-1 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// formatDate trims an RFC3339-ish timestamp down to its date component,
// leaving anything it doesn't recognize untouched.
func formatDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) >= 10 && (strings.HasPrefix(date, "19") || strings.HasPrefix(date, "20")) {
		return date[:10]
	}
	return date
}
