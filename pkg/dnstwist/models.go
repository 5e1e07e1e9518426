package dnstwist

import (
	"github.com/domaintwist/dnstwist/internal/fuzzer"
)

// Options configures one engine run. It is the public surface the CLI (and
// any other embedder) builds before calling New.
type Options struct {
	// Domain is the target domain to analyze.
	Domain string

	// All joins multi-value DNS fields with ";" in tabular output instead
	// of printing only the first value.
	All bool

	// Banners enables the HTTP and SMTP banner-grab probes.
	Banners bool

	// MXCheck enables the MX relay ("spy") probe.
	MXCheck bool

	// Whois enables the WHOIS creation/update-date probe. Forces the
	// worker pool to a single worker.
	Whois bool

	// GeoIP enables the GeoIP country-lookup probe.
	GeoIP bool

	// SSDeep enables the fuzzy-hash content-similarity probe.
	SSDeep bool

	// Registered post-filters results to candidates with at least one
	// resolved DNS field.
	Registered bool

	// Format selects the output renderer: cli, csv, json, idle.
	Format string

	// Fuzzers restricts which permutation strategies run (nil/empty runs
	// the default set; Various always runs regardless).
	Fuzzers []string

	// Dictionary is a path to a word-list file for the Dictionary expander.
	Dictionary string

	// TLD lists paths to TLD-swap word-list files.
	TLD []string

	// Threads sets the worker pool size (forced to 1 when Whois is set).
	Threads int

	// Nameservers (host:port pairs) selects the full DNS-protocol resolver
	// querying these servers. Empty uses the host's own resolver, which
	// looks up A and AAAA only (no NS or MX).
	Nameservers []string

	// GeoIPDatabase is the path to a MaxMind GeoLite2-Country.mmdb file.
	// Required when GeoIP is set.
	GeoIPDatabase string

	// UserAgent is sent on HTTP/SMTP probes and the fuzzy-hash fetch.
	UserAgent string
}

// Result is the externally-visible, JSON/CSV-friendly view of one
// enriched candidate.
type Result struct {
	Fuzzer    string              `json:"fuzzer"`
	Domain    string              `json:"domain"`
	DNS       map[string][]string `json:"dns,omitempty"`
	GeoIP     string              `json:"geoip,omitempty"`
	Banner    map[string]string   `json:"banner,omitempty"`
	Whois     map[string]string   `json:"whois,omitempty"`
	FuzzyHash map[string]int      `json:"fuzzyhash,omitempty"`
	NXDomain  bool                `json:"nxdomain,omitempty"`
	MXSpy     bool                `json:"mxspy,omitempty"`
}

// GetARecords returns the A records resolved for the candidate.
func (r *Result) GetARecords() []string { return r.DNS["A"] }

// GetMXRecords returns the MX records resolved for the candidate.
func (r *Result) GetMXRecords() []string { return r.DNS["MX"] }

// GetNSRecords returns the NS records resolved for the candidate.
func (r *Result) GetNSRecords() []string { return r.DNS["NS"] }

// HasARecords reports whether the candidate has at least one A record.
func (r *Result) HasARecords() bool { return len(r.GetARecords()) > 0 }

// HasMXRecords reports whether the candidate has at least one MX record.
func (r *Result) HasMXRecords() bool { return len(r.GetMXRecords()) > 0 }

// HasNSRecords reports whether the candidate has at least one NS record.
func (r *Result) HasNSRecords() bool { return len(r.GetNSRecords()) > 0 }

// Results is a slice of Result with a few convenience filters used by
// embedders that don't want to re-walk the slice themselves.
type Results []Result

func (r Results) GetDomainsWithARecords() Results {
	var out Results
	for _, res := range r {
		if res.HasARecords() {
			out = append(out, res)
		}
	}
	return out
}

func (r Results) GetDomainsWithoutARecords() Results {
	var out Results
	for _, res := range r {
		if !res.HasARecords() {
			out = append(out, res)
		}
	}
	return out
}

func toResult(c *fuzzer.Candidate) Result {
	return Result{
		Fuzzer:    c.Fuzzer,
		Domain:    c.ASCII,
		DNS:       c.DNS,
		GeoIP:     c.GeoIP,
		Banner:    c.Banner,
		Whois:     c.Whois,
		FuzzyHash: c.FuzzyHash,
		NXDomain:  c.NXDomain,
		MXSpy:     c.MXSpy,
	}
}

// Candidates converts Results back into fuzzer.Candidate values for
// embedders (like the CLI) that want to hand them to internal/formatter.
func (r Results) Candidates() []*fuzzer.Candidate {
	out := make([]*fuzzer.Candidate, 0, len(r))
	for _, res := range r {
		out = append(out, toCandidate(res))
	}
	return out
}

func toCandidate(r Result) *fuzzer.Candidate {
	return &fuzzer.Candidate{
		Fuzzer:    r.Fuzzer,
		Domain:    r.Domain,
		ASCII:     r.Domain,
		DNS:       r.DNS,
		GeoIP:     r.GeoIP,
		Banner:    r.Banner,
		Whois:     r.Whois,
		FuzzyHash: r.FuzzyHash,
		NXDomain:  r.NXDomain,
		MXSpy:     r.MXSpy,
	}
}
