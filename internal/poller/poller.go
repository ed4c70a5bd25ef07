package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/angeloszaimis/health-widget/internal/health"
	"github.com/angeloszaimis/health-widget/internal/metrics"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

// DefaultInterval is the time between polls when none is configured.
const DefaultInterval = 5 * time.Second

var (
	ErrAlreadyStarted = errors.New("poller: already started")
	ErrStopped        = errors.New("poller: stopped")
)

type Poller struct {
	fetcher     health.Fetcher
	widget      *widget.Widget
	interval    time.Duration
	stopOnError bool
	newTicker   TickerFactory
	logger      *slog.Logger
	metrics     *metrics.Collector
	inFlight    *semaphore.Weighted

	mutex          sync.Mutex
	started        bool
	stopped        bool
	cancelLoop     context.CancelFunc
	cancelRequests context.CancelFunc
	done           chan struct{}
}

type Option func(*Poller)

func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithStopOnError controls whether polling halts once the widget has failed.
// It defaults to true.
func WithStopOnError(stop bool) Option {
	return func(p *Poller) {
		p.stopOnError = stop
	}
}

func WithTicker(factory TickerFactory) Option {
	return func(p *Poller) {
		p.newTicker = factory
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(p *Poller) {
		p.metrics = collector
	}
}

// New creates a poller feeding w from fetcher.
func New(fetcher health.Fetcher, w *widget.Widget, opts ...Option) (*Poller, error) {
	if fetcher == nil {
		return nil, errors.New("poller: fetcher required")
	}
	if w == nil {
		return nil, errors.New("poller: widget required")
	}

	p := &Poller{
		fetcher:     fetcher,
		widget:      w,
		interval:    DefaultInterval,
		stopOnError: true,
		newTicker:   NewSystemTicker,
		logger:      slog.Default(),
		inFlight:    semaphore.NewWeighted(1),
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}

	return p, nil
}

// Start polls immediately and then schedules a poll every interval. The
// loop ends on Stop, when ctx is cancelled, or after the widget fails when
// stop-on-error is set. Cancelling ctx tears the widget down like Stop.
func (p *Poller) Start(ctx context.Context) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.stopped {
		return ErrStopped
	}
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	loopCtx, cancelLoop := context.WithCancel(ctx)
	requestCtx, cancelRequests := context.WithCancel(ctx)
	p.cancelLoop = cancelLoop
	p.cancelRequests = cancelRequests

	go p.run(ctx, loopCtx, requestCtx)

	return nil
}

func (p *Poller) run(parent, loopCtx, requestCtx context.Context) {
	defer close(p.done)

	ticker := p.newTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Health poller started", slog.Duration("interval", p.interval))

	p.poll(requestCtx)

	for {
		select {
		case <-loopCtx.Done():
			if parent.Err() != nil {
				p.widget.Deactivate()
			}
			p.logger.Info("Health poller stopped")
			return

		case <-ticker.C():
			p.poll(requestCtx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if p.stopOnError && p.widget.Failed() {
		return
	}

	if !p.inFlight.TryAcquire(1) {
		p.logger.Debug("Previous poll still in flight, skipping tick")
		p.metrics.Emit(metrics.MetricEvent{Type: metrics.EventPollSkipped})
		return
	}

	pollID := uuid.NewString()
	p.metrics.Emit(metrics.MetricEvent{Type: metrics.EventPollStarted, PollID: pollID})

	go func() {
		defer p.inFlight.Release(1)

		start := time.Now()
		report, err := p.fetcher.Fetch(ctx)
		duration := time.Since(start)

		if ctx.Err() != nil {
			p.logger.Debug("Discarding poll result after teardown", slog.String("poll_id", pollID))
			return
		}

		if !p.widget.Apply(report, err) {
			p.logger.Debug("Widget inactive, poll result dropped", slog.String("poll_id", pollID))
			return
		}

		if err != nil {
			p.logger.Warn("Health poll failed",
				slog.String("poll_id", pollID),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
			p.metrics.Emit(metrics.MetricEvent{
				Type:     metrics.EventPollFailed,
				PollID:   pollID,
				Duration: duration,
				Err:      err.Error(),
			})

			if p.stopOnError {
				p.halt()
			}
			return
		}

		p.logger.Debug("Health poll succeeded",
			slog.String("poll_id", pollID),
			slog.Duration("duration", duration))
		p.metrics.Emit(metrics.MetricEvent{
			Type:     metrics.EventPollSucceeded,
			PollID:   pollID,
			Duration: duration,
		})
	}()
}

// halt ends the schedule without tearing the widget down.
func (p *Poller) halt() {
	p.mutex.Lock()
	cancel := p.cancelLoop
	p.mutex.Unlock()

	if cancel != nil {
		p.logger.Info("Widget entered error state, halting polls")
		cancel()
	}
}

// Stop cancels the schedule and in-flight requests and deactivates the
// widget. It waits for the loop to exit but not for in-flight requests.
// Calling Stop more than once is a no-op.
func (p *Poller) Stop() {
	p.mutex.Lock()
	if p.stopped {
		p.mutex.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	cancelLoop, cancelRequests := p.cancelLoop, p.cancelRequests
	p.mutex.Unlock()

	p.widget.Deactivate()

	if !started {
		close(p.done)
		return
	}

	cancelLoop()
	cancelRequests()
	<-p.done
}

// Done is closed when the poll loop exits.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Running reports whether the poll loop is scheduling polls.
func (p *Poller) Running() bool {
	p.mutex.Lock()
	started := p.started
	p.mutex.Unlock()

	if !started {
		return false
	}

	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
