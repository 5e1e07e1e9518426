// Package dnsresolver implements the capability.Resolver interface: a full
// protocol-level resolver backed by github.com/miekg/dns, and a fallback
// that uses the host's own resolver when no nameserver was configured.
package dnsresolver

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	queryTimeout = 2500 * time.Millisecond
	totalBudget  = 5 * time.Second
	maxAttempts  = 2
)

// ServFailSentinel is stored in place of an answer list when every
// configured nameserver failed to answer.
const ServFailSentinel = "!ServFail"

// NXDomainError signals that the name does not exist, distinct from a
// transient resolution failure.
type NXDomainError struct{ Domain string }

func (e *NXDomainError) Error() string { return fmt.Sprintf("dnsresolver: %s: no such domain", e.Domain) }

// ServFailError signals that every configured nameserver failed to answer.
type ServFailError struct{ Domain string }

func (e *ServFailError) Error() string { return fmt.Sprintf("dnsresolver: %s: all nameservers failed", e.Domain) }

// Full is the protocol-level resolver: NS, A, AAAA, MX over a configurable
// set of nameservers, with a 2.5s per-query timeout and an overall 5s
// lifetime budget spent across retries.
type Full struct {
	nameservers []string
	client      *dns.Client
}

// NewFull builds a resolver against nameservers (host:port pairs). When
// nameservers is empty, 8.8.8.8:53 is used as a default recursive resolver.
func NewFull(nameservers []string) *Full {
	if len(nameservers) == 0 {
		nameservers = []string{"8.8.8.8:53"}
	}
	return &Full{
		nameservers: nameservers,
		client:      &dns.Client{Net: "udp", Timeout: queryTimeout},
	}
}

func (r *Full) Full() bool { return true }

func (r *Full) query(ctx context.Context, domain string, qtype uint16) ([]dns.RR, error) {
	fqdn := dns.Fqdn(domain)
	deadline := time.Now().Add(totalBudget)
	ctx, cancelBudget := context.WithDeadline(ctx, deadline)
	defer cancelBudget()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if time.Now().After(deadline) {
			break
		}

		m := new(dns.Msg)
		m.SetQuestion(fqdn, qtype)
		m.RecursionDesired = true

		var allFailed = true
		for _, ns := range r.nameservers {
			qctx, cancel := context.WithTimeout(ctx, queryTimeout)
			resp, _, err := r.client.ExchangeContext(qctx, m, ns)
			cancel()
			if err != nil {
				lastErr = err
				continue
			}
			allFailed = false
			switch resp.Rcode {
			case dns.RcodeNameError:
				return nil, &NXDomainError{Domain: domain}
			case dns.RcodeServerFailure:
				lastErr = &ServFailError{Domain: domain}
				continue
			case dns.RcodeSuccess:
				return resp.Answer, nil
			default:
				return nil, fmt.Errorf("dnsresolver: %s: rcode %d", domain, resp.Rcode)
			}
		}
		if allFailed {
			lastErr = &ServFailError{Domain: domain}
		}
	}

	if lastErr == nil {
		lastErr = &ServFailError{Domain: domain}
	}
	return nil, lastErr
}

func (r *Full) LookupNS(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if ns, ok := rr.(*dns.NS); ok {
			out = append(out, strings.TrimSuffix(ns.Ns, "."))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Full) LookupA(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeA)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if a, ok := rr.(*dns.A); ok {
			out = append(out, a.A.String())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Full) LookupAAAA(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeAAAA)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if aaaa, ok := rr.(*dns.AAAA); ok {
			out = append(out, aaaa.AAAA.String())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Full) LookupMX(ctx context.Context, domain string) ([]string, error) {
	answers, err := r.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			out = append(out, strings.TrimSuffix(mx.Mx, "."))
		}
	}
	sort.Strings(out)
	return out, nil
}

// HostStub resolves A/AAAA via the host's own resolver (getaddrinfo-style),
// used when no custom nameserver capability is configured. It cannot
// distinguish NXDOMAIN/SERVFAIL from other lookup failures.
type HostStub struct{}

func NewHostStub() *HostStub { return &HostStub{} }

func (r *HostStub) Full() bool { return false }

func (r *HostStub) LookupNS(ctx context.Context, domain string) ([]string, error) {
	return nil, fmt.Errorf("dnsresolver: NS lookup unavailable without a full resolver")
}

func (r *HostStub) LookupMX(ctx context.Context, domain string) ([]string, error) {
	return nil, fmt.Errorf("dnsresolver: MX lookup unavailable without a full resolver")
}

func (r *HostStub) LookupA(ctx context.Context, domain string) ([]string, error) {
	a, _, err := r.lookupAddrs(ctx, domain)
	return a, err
}

func (r *HostStub) LookupAAAA(ctx context.Context, domain string) ([]string, error) {
	_, aaaa, err := r.lookupAddrs(ctx, domain)
	return aaaa, err
}

func (r *HostStub) lookupAddrs(ctx context.Context, domain string) (a, aaaa []string, err error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain)
	if err != nil {
		return nil, nil, err
	}
	for _, ip := range ips {
		if ip.IP.To4() != nil {
			a = append(a, ip.IP.String())
		} else {
			aaaa = append(aaaa, ip.IP.String())
		}
	}
	sort.Strings(a)
	sort.Strings(aaaa)
	return a, aaaa, nil
}
