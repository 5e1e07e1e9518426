// Package capability describes the optional network-enrichment providers a
// scanner worker is configured with. Each capability is an interface; a nil
// one disables its probe, and the worker checks it before running that probe.
package capability

import (
	"context"
	"net"
)

// Resolver performs DNS lookups. The full resolver (miekg/dns-backed)
// implements NS/A/AAAA/MX with custom nameservers; the host-stub fallback
// implements only A/AAAA via the OS resolver.
type Resolver interface {
	LookupNS(ctx context.Context, domain string) (ns []string, err error)
	LookupA(ctx context.Context, domain string) (a []string, err error)
	LookupAAAA(ctx context.Context, domain string) (aaaa []string, err error)
	LookupMX(ctx context.Context, domain string) (mx []string, err error)
	// Full reports whether this resolver can distinguish NXDOMAIN and
	// SERVFAIL from other failures (true for the DNS-protocol resolver,
	// false for the getaddrinfo-style fallback).
	Full() bool
}

// WHOIS looks up domain registration metadata.
type WHOIS interface {
	Lookup(domain string) (created, updated string, err error)
}

// GeoIP resolves an IP address to a country name.
type GeoIP interface {
	Country(ip net.IP) (string, error)
}

// FuzzyHash computes and compares locality-sensitive content digests.
type FuzzyHash interface {
	Hash(content []byte) string
	Compare(a, b string) int
}

// Set is the collection of capabilities a scanner Pool is built with.
// A nil field disables the corresponding probe path.
type Set struct {
	Resolver  Resolver
	WHOIS     WHOIS
	GeoIP     GeoIP
	FuzzyHash FuzzyHash

	Banners bool
	MXCheck bool
}
