// Package queue implements the single-producer, multi-consumer job queue
// that holds the deduplicated candidate set between generation and
// enrichment.
package queue

import (
	"sync/atomic"

	"github.com/domaintwist/dnstwist/internal/fuzzer"
)

// Queue is a thread-safe FIFO of pending candidates. New loads it once and
// closes it; workers Pop until it reports empty. Each
// job is owned by exactly one consumer from Pop until the worker finishes
// with it.
type Queue struct {
	jobs      chan *fuzzer.Candidate
	total     int32
	remaining int32
}

// New creates a queue pre-sized for candidates and fills it. The channel is
// buffered to len(candidates) so filling it never blocks the producer.
func New(candidates []*fuzzer.Candidate) *Queue {
	q := &Queue{
		jobs:  make(chan *fuzzer.Candidate, len(candidates)),
		total: int32(len(candidates)),
	}
	q.remaining = q.total
	for _, c := range candidates {
		q.jobs <- c
	}
	close(q.jobs)
	return q
}

// Pop dequeues the next candidate. ok is false once the queue is drained.
func (q *Queue) Pop() (c *fuzzer.Candidate, ok bool) {
	c, ok = <-q.jobs
	return c, ok
}

// Done marks one job complete, used by the progress reporter to compute
// queue depth without racing the channel itself.
func (q *Queue) Done() {
	atomic.AddInt32(&q.remaining, -1)
}

// Len returns the number of jobs not yet marked done.
func (q *Queue) Len() int {
	return int(atomic.LoadInt32(&q.remaining))
}

// Total returns the number of jobs the queue was created with.
func (q *Queue) Total() int {
	return int(q.total)
}
