package poller_test

import (
	"context"
	"sync"
	"time"

	"github.com/angeloszaimis/health-widget/internal/health"
	"github.com/angeloszaimis/health-widget/internal/poller"
)

type result struct {
	report health.Report
	err    error
}

// fakeFetcher blocks each Fetch until a result is pushed. It ignores ctx so
// tests can resolve a request after the poller has been stopped.
type fakeFetcher struct {
	mutex   sync.Mutex
	calls   int
	results chan result
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{results: make(chan result, 16)}
}

func (f *fakeFetcher) Fetch(ctx context.Context) (health.Report, error) {
	f.mutex.Lock()
	f.calls++
	f.mutex.Unlock()

	r := <-f.results
	return r.report, r.err
}

func (f *fakeFetcher) Calls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls
}

func (f *fakeFetcher) Resolve(report health.Report, err error) {
	f.results <- result{report: report, err: err}
}

type fakeTicker struct {
	mutex    sync.Mutex
	ch       chan time.Time
	interval time.Duration
	stopped  bool
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.mutex.Lock()
	t.stopped = true
	t.mutex.Unlock()
}

func (t *fakeTicker) Stopped() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.stopped
}

// Tick delivers one tick, reporting false if the loop did not take it.
func (t *fakeTicker) Tick() bool {
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func (t *fakeTicker) Factory() poller.TickerFactory {
	return func(d time.Duration) poller.Ticker {
		t.mutex.Lock()
		t.interval = d
		t.mutex.Unlock()
		return t
	}
}

func (t *fakeTicker) Interval() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.interval
}
