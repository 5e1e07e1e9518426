// Package progress reports queue drain rate on a ticker, the same pattern
// the reference fleet uses for long-running fan-out jobs: a background
// goroutine polls an atomic counter and prints a percentage line until
// told to stop.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/domaintwist/dnstwist/internal/queue"
)

// Reporter periodically writes "done/total (pct%)" lines for q until Stop is
// called. It never mutates the queue; it only observes Len/Total.
type Reporter struct {
	q        *queue.Queue
	out      io.Writer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// Start launches a reporter against q, writing to out every interval. A
// non-positive interval defaults to one second, matching the reference
// CLI's idle-status cadence.
func Start(q *queue.Queue, out io.Writer, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = time.Second
	}
	r := &Reporter{
		q:        q,
		out:      out,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Reporter) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.report()
		case <-r.stop:
			return
		}
	}
}

func (r *Reporter) report() {
	total := r.q.Total()
	if total == 0 {
		return
	}
	remaining := r.q.Len()
	completed := total - remaining
	pct := float64(completed) / float64(total) * 100
	fmt.Fprintf(r.out, "%d/%d (%.1f%%)\n", completed, total, pct)
}

// Stop halts the reporter and blocks until its goroutine has exited.
func (r *Reporter) Stop() {
	close(r.stop)
	<-r.done
}
