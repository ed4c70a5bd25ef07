package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type EventType string

const (
	EventPollStarted   EventType = "poll_started"
	EventPollSkipped   EventType = "poll_skipped"
	EventPollSucceeded EventType = "poll_succeeded"
	EventPollFailed    EventType = "poll_failed"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	PollID    string
	Duration  time.Duration
	Err       string
}

type Collector struct {
	eventCh  chan MetricEvent
	metrics  *Metrics
	endpoint string
	logger   *slog.Logger

	registry *prometheus.Registry
	polls    *prometheus.CounterVec
	latency  prometheus.Histogram
}

func NewCollector(bufferSize int, endpoint string, logger *slog.Logger) *Collector {
	c := &Collector{
		eventCh:  make(chan MetricEvent, bufferSize),
		metrics:  NewMetrics(),
		endpoint: endpoint,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "health_widget",
			Name:      "polls_total",
			Help:      "Health endpoint polls by outcome.",
		}, []string{"result"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "health_widget",
			Name:      "poll_duration_seconds",
			Help:      "Duration of completed health endpoint polls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(c.polls, c.latency)

	return c
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Emit queues an event, dropping it when the buffer is full. A nil collector
// is a no-op.
func (c *Collector) Emit(event MetricEvent) {
	if c == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventPollStarted:
		c.metrics.RecordStarted()
		c.polls.WithLabelValues("started").Inc()

	case EventPollSkipped:
		c.metrics.RecordSkipped()
		c.polls.WithLabelValues("skipped").Inc()

	case EventPollSucceeded:
		c.metrics.RecordSuccess(event.Timestamp, event.Duration)
		c.polls.WithLabelValues("succeeded").Inc()
		c.latency.Observe(event.Duration.Seconds())

	case EventPollFailed:
		c.metrics.RecordFailure(event.Timestamp, event.Duration, event.Err)
		c.polls.WithLabelValues("failed").Inc()
		c.latency.Observe(event.Duration.Seconds())
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot(c.endpoint)
}

// Registry exposes the Prometheus registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
