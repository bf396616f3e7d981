// SPDX-License-Identifier: EPL-2.0

// Package parallel is the fork/join primitive the pipeline fans work out
// with. Callers only see For; how batches map to goroutines is up to the
// Scheduler.
package parallel

import (
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

// Scheduler runs fn over [0, n) split into consecutive batches of at most
// batchSize items and returns once every batch has finished. Batches may run
// concurrently; each call gets its batch index and half-open range.
type Scheduler interface {
	For(n, batchSize int, fn func(batch, start, end int))
}

// Batches is the number of batches For splits n items into.
func Batches(n, batchSize int) int {
	if n <= 0 {
		return 0
	}
	batchSize = max(batchSize, 1)
	return (n + batchSize - 1) / batchSize
}

func bounds(batch, n, batchSize int) (int, int) {
	batchSize = max(batchSize, 1)
	start := batch * batchSize
	return start, min(start+batchSize, n)
}

// Serial runs every batch in order on the calling goroutine.
type Serial struct{}

func (Serial) For(n, batchSize int, fn func(batch, start, end int)) {
	for b := range Batches(n, batchSize) {
		start, end := bounds(b, n, batchSize)
		fn(b, start, end)
	}
}

// Pool runs batches on at most Workers goroutines at a time.
type Pool struct {
	workers int
}

// NewPool sizes the pool; workers <= 0 uses GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

func (p *Pool) Workers() int { return p.workers }

func (p *Pool) For(n, batchSize int, fn func(batch, start, end int)) {
	batches := Batches(n, batchSize)
	if batches <= 1 || p.workers == 1 {
		Serial{}.For(n, batchSize, fn)
		return
	}

	wg := sizedwaitgroup.New(p.workers)
	for b := range batches {
		start, end := bounds(b, n, batchSize)
		wg.Add()
		go func() {
			defer wg.Done()
			fn(b, start, end)
		}()
	}
	wg.Wait()
}
