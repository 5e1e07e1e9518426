// Package dnstwist is the public API: it wires the permutation generator,
// job queue, capability set, and enrichment worker pool together behind a
// single Options-in, Results-out entry point.
package dnstwist

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/domaintwist/dnstwist/internal/capability"
	"github.com/domaintwist/dnstwist/internal/dnsresolver"
	"github.com/domaintwist/dnstwist/internal/fuzzer"
	"github.com/domaintwist/dnstwist/internal/fuzzyhash"
	"github.com/domaintwist/dnstwist/internal/geoclient"
	"github.com/domaintwist/dnstwist/internal/progress"
	"github.com/domaintwist/dnstwist/internal/queue"
	"github.com/domaintwist/dnstwist/internal/scanner"
	"github.com/domaintwist/dnstwist/internal/urlparser"
	"github.com/domaintwist/dnstwist/internal/whoisclient"
	"github.com/domaintwist/dnstwist/internal/wordlist"
)

const defaultUserAgent = "Mozilla/5.0 dnstwist"

// Engine runs one analysis pass over Options.Domain.
type Engine struct {
	options Options
	caps    capability.Set
	geo     *geoclient.Client // kept to Close() after a run, nil if GeoIP disabled

	// Notices collects capability-missing warnings raised while building
	// the engine, for the CLI to print once to stderr.
	Notices []string
}

// New validates options and builds the capability set the engine will use.
// Capabilities that fail to construct (e.g. a missing GeoIP database) are
// recorded as a Notice and silently disabled rather than aborting the run.
func New(options Options) (*Engine, error) {
	if options.Domain == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	if options.Threads < 1 {
		options.Threads = 10
	}
	if options.UserAgent == "" {
		options.UserAgent = defaultUserAgent
	}

	e := &Engine{options: options}

	if len(options.Nameservers) > 0 {
		e.caps.Resolver = dnsresolver.NewFull(options.Nameservers)
	} else {
		e.caps.Resolver = dnsresolver.NewHostStub()
	}

	e.caps.Banners = options.Banners
	e.caps.MXCheck = options.MXCheck

	if options.Whois {
		e.caps.WHOIS = whoisclient.NewClient()
	}

	if options.GeoIP {
		if options.GeoIPDatabase == "" {
			e.Notices = append(e.Notices, "Notice: --geoip requires --geoip-database, GeoIP lookups disabled")
		} else if geo, err := geoclient.Open(options.GeoIPDatabase); err != nil {
			e.Notices = append(e.Notices, fmt.Sprintf("Notice: GeoIP database unavailable (%v), GeoIP lookups disabled", err))
		} else {
			e.geo = geo
			e.caps.GeoIP = geo
		}
	}

	if options.SSDeep {
		e.caps.FuzzyHash = fuzzyhash.New()
	}

	return e, nil
}

// Close releases resources the engine opened (currently just the GeoIP
// database, if one was opened).
func (e *Engine) Close() error {
	if e.geo != nil {
		return e.geo.Close()
	}
	return nil
}

// Run generates the permutation set, enriches it, applies the Registered
// post-filter, and returns the results. progressOut, if non-nil, receives a
// periodic queue-depth percentage line (stopped automatically before Run
// returns).
func (e *Engine) Run(ctx context.Context, progressOut io.Writer) (Results, error) {
	target, err := urlparser.Parse(e.options.Domain)
	if err != nil {
		return nil, fmt.Errorf("invalid domain name: %w", err)
	}

	gen, err := fuzzer.NewGenerator(target.Domain)
	if err != nil {
		return nil, fmt.Errorf("invalid domain name: %w", err)
	}
	gen.Generate(e.options.Fuzzers)

	if e.options.Dictionary != "" {
		words, err := wordlist.Load(e.options.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		gen.Dictionary(words)
	}
	for _, path := range e.options.TLD {
		tlds, err := wordlist.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load tld list: %w", err)
		}
		gen.TLDSwap(tlds)
	}

	candidates := gen.Finalize()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no valid candidates generated for %s", e.options.Domain)
	}

	originalASCII := candidates[0].ASCII
	if originalASCII == "" {
		originalASCII = candidates[0].Domain
	}

	cfg := scanner.Config{
		OriginalASCII: originalASCII,
		Scheme:        target.Scheme,
		Path:          target.Path,
		Query:         strings.TrimPrefix(target.Query, "?"),
		UserAgent:     e.options.UserAgent,
	}
	if e.caps.FuzzyHash != nil {
		cfg.OriginalHash = fetchOriginalHash(ctx, e.caps.FuzzyHash, cfg, originalASCII, e.options.UserAgent)
	}

	q := queue.New(candidates)
	pool := scanner.New(q, e.caps, cfg)

	var reporter *progress.Reporter
	if progressOut != nil {
		reporter = progress.Start(q, progressOut, time.Second)
	}

	pool.Run(ctx, e.options.Threads)

	if reporter != nil {
		reporter.Stop()
	}

	results := make(Results, 0, len(candidates))
	for _, c := range candidates {
		if e.options.Registered && !c.HasAnyDNS() {
			continue
		}
		results = append(results, toResult(c))
	}
	return results, nil
}

func fetchOriginalHash(ctx context.Context, fh capability.FuzzyHash, cfg scanner.Config, domain, ua string) string {
	client := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	uri := cfg.Scheme + "://" + domain + cfg.Path
	if cfg.Query != "" {
		uri += "?" + cfg.Query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil || len(body) == 0 {
		return ""
	}
	return fh.Hash(body)
}
