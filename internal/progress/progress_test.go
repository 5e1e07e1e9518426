package progress

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/domaintwist/dnstwist/internal/fuzzer"
	"github.com/domaintwist/dnstwist/internal/queue"
)

// syncWriter guards the buffer the reporter goroutine writes to so the test
// can read it without racing.
type syncWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestReporter_WritesProgressLinesUntilStopped(t *testing.T) {
	q := queue.New([]*fuzzer.Candidate{{Domain: "a.com"}, {Domain: "b.com"}})
	out := &syncWriter{}

	r := Start(q, out, 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	q.Done()
	time.Sleep(35 * time.Millisecond)
	r.Stop()

	assert.Contains(t, out.String(), "/2 (")
}

func TestReporter_ZeroIntervalDefaultsToOneSecond(t *testing.T) {
	q := queue.New(nil)
	out := &syncWriter{}

	r := Start(q, out, 0)
	assert.Equal(t, time.Second, r.interval)
	r.Stop()
}

func TestReporter_SkipsReportWhenTotalIsZero(t *testing.T) {
	q := queue.New(nil)
	out := &syncWriter{}

	r := Start(q, out, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	assert.Empty(t, out.String())
}
