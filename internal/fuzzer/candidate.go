package fuzzer

import "strings"

// Candidate is a single generated domain permutation together with whatever
// enrichment evidence the scanner has attached to it so far. Only the
// worker that dequeued a Candidate may write to it; every other field is
// read-only for the rest of the pipeline.
type Candidate struct {
	Fuzzer string
	Domain string // Unicode presentation form
	ASCII  string // IDNA ToASCII form, filled in by the scanner

	DNS       map[string][]string
	GeoIP     string
	Banner    map[string]string
	Whois     map[string]string
	FuzzyHash map[string]int

	NXDomain bool
	MXSpy    bool
}

func newCandidate(fuzzer, domain string) *Candidate {
	return &Candidate{
		Fuzzer:    fuzzer,
		Domain:    domain,
		DNS:       make(map[string][]string),
		Banner:    make(map[string]string),
		Whois:     make(map[string]string),
		FuzzyHash: make(map[string]int),
	}
}

// HasAnyDNS reports whether any DNS record type has been resolved. This is
// what the --registered filter checks: a candidate with no resolved A,
// AAAA, NS, or MX record is treated as unregistered and dropped. A field
// holding only the "!ServFail" sentinel does not count as resolved.
func (c *Candidate) HasAnyDNS() bool {
	for _, key := range []string{"A", "AAAA", "NS", "MX"} {
		if v := c.DNS[key]; len(v) > 0 && !strings.HasPrefix(v[0], "!") {
			return true
		}
	}
	return false
}
