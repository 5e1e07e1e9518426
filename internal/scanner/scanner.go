// Package scanner implements the enrichment worker pool: N workers draining
// a job queue, each running the fixed per-candidate probe sequence (DNS, MX
// relay, WHOIS, GeoIP, HTTP/SMTP banners, fuzzy-hash similarity) against the
// capability set the pool was built with.
package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"

	"github.com/domaintwist/dnstwist/internal/capability"
	"github.com/domaintwist/dnstwist/internal/dnsresolver"
	"github.com/domaintwist/dnstwist/internal/fuzzer"
	"github.com/domaintwist/dnstwist/internal/queue"
)

const (
	httpTimeout   = 5 * time.Second
	bannerTimeout = 1 * time.Second
	mxSpyTimeout  = 5 * time.Second
)

// Config carries everything a worker needs beyond the capability set: the
// original domain's fingerprint (used to skip self-comparison in the MX spy
// probe and as the fuzzy-hash baseline) and the output parameters that flow
// straight through to raw-socket probes.
type Config struct {
	OriginalASCII string
	OriginalHash  string // pre-computed fuzzy hash of the original page, "" if unavailable
	Scheme        string
	Path          string
	Query         string
	UserAgent     string
}

// Pool runs workers over a queue.Queue until it drains or Cancel is called.
type Pool struct {
	q    *queue.Queue
	caps capability.Set
	cfg  Config

	cancel int32 // atomic bool
}

// New builds a pool. When the WHOIS capability is active the caller is
// expected to request a pool of 1 (Workers enforces this anyway).
func New(q *queue.Queue, caps capability.Set, cfg Config) *Pool {
	return &Pool{q: q, caps: caps, cfg: cfg}
}

// Cancel requests that all workers exit after their current candidate.
func (p *Pool) Cancel() {
	atomic.StoreInt32(&p.cancel, 1)
}

func (p *Pool) cancelled() bool {
	return atomic.LoadInt32(&p.cancel) == 1
}

// Workers forces pool size to 1 when the WHOIS capability is configured:
// typical WHOIS libraries are not reentrant and servers rate-limit
// per-client.
func (p *Pool) Workers(requested int) int {
	if requested < 1 {
		requested = 1
	}
	if p.caps.WHOIS != nil {
		return 1
	}
	return requested
}

// Run spawns n workers and blocks until the queue is drained or the pool
// (or ctx) is cancelled and every in-flight worker has finished its current
// candidate.
func (p *Pool) Run(ctx context.Context, n int) {
	n = p.Workers(n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			p.worker(ctx)
			return nil
		})
	}
	g.Wait()
}

func (p *Pool) worker(ctx context.Context) {
	for {
		if p.cancelled() || ctx.Err() != nil {
			return
		}
		c, ok := p.q.Pop()
		if !ok {
			p.Cancel()
			return
		}
		p.enrich(ctx, c)
		p.q.Done()
	}
}

// enrich runs the fixed probe sequence (DNS, MX relay, WHOIS, GeoIP,
// banners, fuzzy-hash) against one candidate. It never returns an error;
// every probe is best-effort.
func (p *Pool) enrich(ctx context.Context, c *fuzzer.Candidate) {
	ascii, err := idna.ToASCII(c.Domain)
	if err != nil {
		return
	}
	c.ASCII = ascii
	defer func() {
		if u, err := idna.ToUnicode(c.ASCII); err == nil {
			c.Domain = u
		}
	}()

	if p.caps.Resolver == nil {
		return
	}

	nsOK, aPresent, aaaaPresent := p.resolveDNS(ctx, c)
	if c.NXDomain {
		return
	}

	if p.caps.MXCheck && len(c.DNS["MX"]) > 0 && c.ASCII != p.cfg.OriginalASCII {
		p.mxSpyProbe(ctx, c)
	}

	if p.caps.WHOIS != nil && nsOK {
		p.whoisProbe(c)
	}

	if p.caps.GeoIP != nil && aPresent {
		p.geoProbe(c)
	}

	if p.caps.Banners && (aPresent || aaaaPresent) {
		p.httpBannerProbe(c)
	}
	if p.caps.Banners && len(c.DNS["MX"]) > 0 {
		p.smtpBannerProbe(c)
	}

	if p.caps.FuzzyHash != nil && p.cfg.OriginalHash != "" && (aPresent || aaaaPresent) {
		p.fuzzyHashProbe(ctx, c)
	}
}

// resolveDNS implements the ordering rule: NS first; A/AAAA regardless of NS
// outcome as long as the name isn't NXDOMAIN; MX only if NS succeeded.
func (p *Pool) resolveDNS(ctx context.Context, c *fuzzer.Candidate) (nsOK, aPresent, aaaaPresent bool) {
	r := p.caps.Resolver

	if r.Full() {
		ns, err := r.LookupNS(ctx, c.ASCII)
		switch {
		case isNXDomain(err):
			c.NXDomain = true
			return false, false, false
		case isServFail(err):
			c.DNS["NS"] = []string{dnsresolver.ServFailSentinel}
		case err == nil:
			c.DNS["NS"] = ns
			nsOK = true
		}
	}

	a, err := r.LookupA(ctx, c.ASCII)
	switch {
	case isNXDomain(err):
		c.NXDomain = true
		return nsOK, false, false
	case isServFail(err):
		c.DNS["A"] = []string{dnsresolver.ServFailSentinel}
	case err == nil:
		c.DNS["A"] = a
		aPresent = len(a) > 0
	}

	aaaa, err := r.LookupAAAA(ctx, c.ASCII)
	switch {
	case isServFail(err):
		c.DNS["AAAA"] = []string{dnsresolver.ServFailSentinel}
	case err == nil:
		c.DNS["AAAA"] = aaaa
		aaaaPresent = len(aaaa) > 0
	}

	if r.Full() && nsOK {
		mx, err := r.LookupMX(ctx, c.ASCII)
		switch {
		case isServFail(err):
			c.DNS["MX"] = []string{dnsresolver.ServFailSentinel}
		case err == nil:
			c.DNS["MX"] = mx
		}
	}

	return nsOK, aPresent, aaaaPresent
}

func isNXDomain(err error) bool {
	_, ok := err.(*dnsresolver.NXDomainError)
	return ok
}

func isServFail(err error) bool {
	_, ok := err.(*dnsresolver.ServFailError)
	return ok
}

// mxSpyProbe issues a manual SMTP session against the first MX host: MAIL
// FROM / RCPT TO / DATA / QUIT, after a HELO. Success of the whole sequence
// (no I/O error and no 4xx/5xx reply) sets MXSpy.
func (p *Pool) mxSpyProbe(ctx context.Context, c *fuzzer.Candidate) {
	mx := c.DNS["MX"]
	if len(mx) == 0 || strings.HasPrefix(mx[0], "!") {
		return
	}

	dialer := net.Dialer{Timeout: mxSpyTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(mx[0], "25"))
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(mxSpyTimeout))

	buf := make([]byte, 512)
	if n, err := conn.Read(buf); err != nil || n == 0 || buf[0] == '4' || buf[0] == '5' {
		return
	}

	n := rand.Intn(1000000)
	cmds := []string{
		fmt.Sprintf("HELO %s\r\n", p.cfg.OriginalASCII),
		fmt.Sprintf("MAIL FROM:<bob%d@%s>\r\n", n, p.cfg.OriginalASCII),
		fmt.Sprintf("RCPT TO:<alice%d@%s>\r\n", n, c.ASCII),
		"DATA\r\n",
		"Subject: test\r\n\r\ntest\r\n.\r\n",
		"QUIT\r\n",
	}
	for _, cmd := range cmds {
		if _, err := conn.Write([]byte(cmd)); err != nil {
			return
		}
		if n, err := conn.Read(buf); err != nil || n == 0 || buf[0] == '4' || buf[0] == '5' {
			return
		}
	}
	c.MXSpy = true
}

func (p *Pool) whoisProbe(c *fuzzer.Candidate) {
	created, updated, err := p.caps.WHOIS.Lookup(c.ASCII)
	if err != nil {
		return
	}
	if created != "" {
		c.Whois["created"] = created
	}
	if updated != "" {
		c.Whois["updated"] = updated
	}
}

func (p *Pool) geoProbe(c *fuzzer.Candidate) {
	a := c.DNS["A"]
	if len(a) == 0 || strings.HasPrefix(a[0], "!") {
		return
	}
	ip := net.ParseIP(a[0])
	if ip == nil {
		return
	}
	country, err := p.caps.GeoIP.Country(ip)
	if err != nil || country == "" {
		return
	}
	c.GeoIP = strings.SplitN(country, ",", 2)[0]
}

func (p *Pool) httpBannerProbe(c *fuzzer.Candidate) {
	ip := firstUsableAddr(c.DNS["A"], c.DNS["AAAA"])
	if ip == "" {
		return
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, "80"), bannerTimeout)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(bannerTimeout))

	req := fmt.Sprintf("HEAD / HTTP/1.1\r\nHost: %s\r\nUser-agent: %s\r\n\r\n", c.ASCII, p.cfg.UserAgent)
	if _, err := conn.Write([]byte(req)); err != nil {
		return
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		return
	}
	resp := string(buf[:n])

	for _, line := range strings.Split(resp, "\r\n") {
		if strings.HasPrefix(strings.ToLower(line), "server:") {
			c.Banner["http"] = strings.TrimSpace(line[len("server:"):])
			return
		}
	}
	lines := strings.SplitN(resp, "\r\n", 2)
	if len(lines) > 0 && lines[0] != "" {
		if status := statusToken(lines[0]); status != "" {
			c.Banner["http"] = "HTTP " + status
		}
	}
}

// statusToken extracts the status code from an HTTP status line such as
// "HTTP/1.1 200 OK".
func statusToken(statusLine string) string {
	fields := strings.Fields(statusLine)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func (p *Pool) smtpBannerProbe(c *fuzzer.Candidate) {
	mx := c.DNS["MX"]
	if len(mx) == 0 || strings.HasPrefix(mx[0], "!") {
		return
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(mx[0], "25"), bannerTimeout)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(bannerTimeout))

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		return
	}
	line := strings.SplitN(string(buf[:n]), "\r\n", 2)[0]
	if strings.HasPrefix(line, "220") {
		c.Banner["smtp"] = strings.TrimSpace(line[min(4, len(line)):])
		return
	}
	if len(line) > 40 {
		line = line[:40]
	}
	c.Banner["smtp"] = line
}

func (p *Pool) fuzzyHashProbe(ctx context.Context, c *fuzzer.Candidate) {
	uri := fmt.Sprintf("%s://%s%s", p.cfg.Scheme, c.ASCII, p.cfg.Path)
	if p.cfg.Query != "" {
		uri += "?" + p.cfg.Query
	}

	client := &http.Client{
		Timeout: httpTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return
	}

	hash := p.caps.FuzzyHash.Hash(body)
	score := p.caps.FuzzyHash.Compare(p.cfg.OriginalHash, hash)
	c.FuzzyHash["ssdeep"] = score
}

func firstUsableAddr(a, aaaa []string) string {
	if len(a) > 0 && !strings.HasPrefix(a[0], "!") {
		return a[0]
	}
	if len(aaaa) > 0 && !strings.HasPrefix(aaaa[0], "!") {
		return aaaa[0]
	}
	return ""
}
