package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxSamples = 1000

type Metrics struct {
	mutex       sync.RWMutex
	started     int64
	skipped     int64
	succeeded   int64
	failed      int64
	durations   []time.Duration
	lastSuccess time.Time
	lastFailure time.Time
	lastError   string
	startTime   time.Time
}

type Snapshot struct {
	Endpoint       string        `json:"endpoint"`
	Uptime         time.Duration `json:"uptime"`
	PollsStarted   int64         `json:"polls_started"`
	PollsSkipped   int64         `json:"polls_skipped"`
	PollsSucceeded int64         `json:"polls_succeeded"`
	PollsFailed    int64         `json:"polls_failed"`
	AvgDuration    time.Duration `json:"avg_duration"`
	P50Duration    time.Duration `json:"p50_duration"`
	P95Duration    time.Duration `json:"p95_duration"`
	P99Duration    time.Duration `json:"p99_duration"`
	LastSuccess    *time.Time    `json:"last_success,omitempty"`
	LastFailure    *time.Time    `json:"last_failure,omitempty"`
	LastError      string        `json:"last_error,omitempty"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordStarted() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.started++
}

func (m *Metrics) RecordSkipped() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.skipped++
}

func (m *Metrics) RecordSuccess(at time.Time, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.succeeded++
	m.lastSuccess = at
	m.addDuration(duration)
}

func (m *Metrics) RecordFailure(at time.Time, duration time.Duration, errMsg string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.failed++
	m.lastFailure = at
	m.lastError = errMsg
	m.addDuration(duration)
}

// addDuration must be called with the mutex held.
func (m *Metrics) addDuration(duration time.Duration) {
	m.durations = append(m.durations, duration)

	if len(m.durations) > maxSamples {
		m.durations = m.durations[1:]
	}
}

func (m *Metrics) Snapshot(endpoint string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Endpoint:       endpoint,
		Uptime:         time.Since(m.startTime),
		PollsStarted:   m.started,
		PollsSkipped:   m.skipped,
		PollsSucceeded: m.succeeded,
		PollsFailed:    m.failed,
		LastError:      m.lastError,
	}

	if !m.lastSuccess.IsZero() {
		t := m.lastSuccess
		snap.LastSuccess = &t
	}
	if !m.lastFailure.IsZero() {
		t := m.lastFailure
		snap.LastFailure = &t
	}

	if len(m.durations) > 0 {
		sorted := make([]time.Duration, len(m.durations))
		copy(sorted, m.durations)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.AvgDuration = average(sorted)
		snap.P50Duration = percentile(sorted, 0.50)
		snap.P95Duration = percentile(sorted, 0.95)
		snap.P99Duration = percentile(sorted, 0.99)
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
