package scanner

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domaintwist/dnstwist/internal/capability"
	"github.com/domaintwist/dnstwist/internal/dnsresolver"
	"github.com/domaintwist/dnstwist/internal/fuzzer"
	"github.com/domaintwist/dnstwist/internal/queue"
)

// fakeResolver is a scripted stand-in for capability.Resolver.
type fakeResolver struct {
	full  bool
	ns    []string
	nsErr error
	a     []string
	aErr  error
	aaaa  []string
	mx    []string
	mxErr error

	nsCalled, mxCalled bool
}

func (f *fakeResolver) Full() bool { return f.full }
func (f *fakeResolver) LookupNS(ctx context.Context, domain string) ([]string, error) {
	f.nsCalled = true
	return f.ns, f.nsErr
}
func (f *fakeResolver) LookupA(ctx context.Context, domain string) ([]string, error) {
	return f.a, f.aErr
}
func (f *fakeResolver) LookupAAAA(ctx context.Context, domain string) ([]string, error) {
	return f.aaaa, nil
}
func (f *fakeResolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	f.mxCalled = true
	return f.mx, f.mxErr
}

func TestResolveDNS_NXDomainSkipsRest(t *testing.T) {
	r := &fakeResolver{full: true, nsErr: &dnsresolver.NXDomainError{Domain: "x"}}
	p := New(nil, capability.Set{Resolver: r}, Config{})
	c := fuzzer.Candidate{DNS: map[string][]string{}}

	nsOK, aPresent, aaaaPresent := p.resolveDNS(context.Background(), &c)
	assert.True(t, c.NXDomain)
	assert.False(t, nsOK)
	assert.False(t, aPresent)
	assert.False(t, aaaaPresent)
	assert.False(t, r.mxCalled, "MX must not be queried once NS reports NXDOMAIN")
}

func TestResolveDNS_MXOnlyAfterNSSuccess(t *testing.T) {
	r := &fakeResolver{full: true, ns: []string{"ns1.example.com"}, a: []string{"1.2.3.4"}, mx: []string{"mail.example.com"}}
	p := New(nil, capability.Set{Resolver: r}, Config{})
	c := fuzzer.Candidate{DNS: map[string][]string{}}

	nsOK, aPresent, _ := p.resolveDNS(context.Background(), &c)
	assert.True(t, nsOK)
	assert.True(t, aPresent)
	assert.True(t, r.mxCalled)
	assert.Equal(t, []string{"mail.example.com"}, c.DNS["MX"])
}

func TestResolveDNS_NoNSNoMXQuery(t *testing.T) {
	r := &fakeResolver{full: true, nsErr: &dnsresolver.ServFailError{Domain: "x"}, a: []string{"1.2.3.4"}}
	p := New(nil, capability.Set{Resolver: r}, Config{})
	c := fuzzer.Candidate{DNS: map[string][]string{}}

	nsOK, aPresent, _ := p.resolveDNS(context.Background(), &c)
	assert.False(t, nsOK)
	assert.True(t, aPresent)
	assert.False(t, r.mxCalled, "MX must be skipped when NS did not succeed")
	assert.Equal(t, []string{dnsresolver.ServFailSentinel}, c.DNS["NS"])
}

func TestResolveDNS_HostStubSkipsNSAndMX(t *testing.T) {
	r := &fakeResolver{full: false, a: []string{"1.2.3.4"}}
	p := New(nil, capability.Set{Resolver: r}, Config{})
	c := fuzzer.Candidate{DNS: map[string][]string{}}

	_, aPresent, _ := p.resolveDNS(context.Background(), &c)
	assert.True(t, aPresent)
	assert.False(t, r.nsCalled)
	assert.False(t, r.mxCalled)
}

type fakeWHOIS struct {
	created, updated string
	err               error
}

func (w *fakeWHOIS) Lookup(domain string) (string, string, error) { return w.created, w.updated, w.err }

type fakeGeoIP struct{ country string }

func (g *fakeGeoIP) Country(ip net.IP) (string, error) { return g.country, nil }

func TestEnrich_GatesOnCapabilityAndDNS(t *testing.T) {
	r := &fakeResolver{full: true, ns: []string{"ns1.example.com"}, a: []string{"93.184.216.34"}}
	whois := &fakeWHOIS{created: "1995-08-14"}
	geo := &fakeGeoIP{country: "United States,NA"}

	p := New(nil, capability.Set{Resolver: r, WHOIS: whois, GeoIP: geo}, Config{OriginalASCII: "example.com"})
	c := fuzzer.Candidate{
		Domain:    "example.com",
		DNS:       map[string][]string{},
		Banner:    map[string]string{},
		Whois:     map[string]string{},
		FuzzyHash: map[string]int{},
	}

	p.enrich(context.Background(), &c)

	assert.Equal(t, "United States", c.GeoIP)
	assert.Equal(t, "1995-08-14", c.Whois["created"])
}

func TestFirstUsableAddr(t *testing.T) {
	assert.Equal(t, "1.2.3.4", firstUsableAddr([]string{"1.2.3.4"}, nil))
	assert.Equal(t, "", firstUsableAddr([]string{dnsresolver.ServFailSentinel}, nil))
	assert.Equal(t, "::1", firstUsableAddr(nil, []string{"::1"}))
}

func TestStatusToken(t *testing.T) {
	assert.Equal(t, "200", statusToken("HTTP/1.1 200 OK"))
	assert.Equal(t, "", statusToken("garbage"))
}

func TestFuzzyHashProbe_ScoresAgainstOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>hello world</html>"))
	}))
	defer srv.Close()

	fh := &recordingFuzzyHash{}
	p := New(nil, capability.Set{FuzzyHash: fh}, Config{
		Scheme:       "http",
		OriginalHash: "orig-hash",
		UserAgent:    "test-agent",
	})

	u := srv.URL
	host, port, _ := net.SplitHostPort(u[len("http://"):])
	_ = port
	c := fuzzer.Candidate{ASCII: host + ":" + port, FuzzyHash: map[string]int{}}

	p.fuzzyHashProbe(context.Background(), &c)
	assert.Equal(t, 77, c.FuzzyHash["ssdeep"])
	assert.Equal(t, "orig-hash", fh.comparedA)
}

type recordingFuzzyHash struct{ comparedA, comparedB string }

func (f *recordingFuzzyHash) Hash(content []byte) string { return "fresh-hash" }
func (f *recordingFuzzyHash) Compare(a, b string) int {
	f.comparedA, f.comparedB = a, b
	return 77
}

func TestWorkers_ForcesSingleWhenWHOISEnabled(t *testing.T) {
	p := New(queue.New(nil), capability.Set{WHOIS: &fakeWHOIS{}}, Config{})
	assert.Equal(t, 1, p.Workers(10))

	p2 := New(queue.New(nil), capability.Set{}, Config{})
	assert.Equal(t, 10, p2.Workers(10))
}
