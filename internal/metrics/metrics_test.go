package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/health-widget/internal/metrics"
)

const endpoint = "http://localhost:8100/health/health_check"

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("counters", func() {
		It("should count started and skipped polls", func() {
			m.RecordStarted()
			m.RecordStarted()
			m.RecordSkipped()

			snap := m.Snapshot(endpoint)
			Expect(snap.PollsStarted).To(Equal(int64(2)))
			Expect(snap.PollsSkipped).To(Equal(int64(1)))
			Expect(snap.Endpoint).To(Equal(endpoint))
		})

		It("should record successes and failures separately", func() {
			at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			m.RecordSuccess(at, 100*time.Millisecond)
			m.RecordFailure(at.Add(time.Second), 200*time.Millisecond, "connection refused")

			snap := m.Snapshot(endpoint)
			Expect(snap.PollsSucceeded).To(Equal(int64(1)))
			Expect(snap.PollsFailed).To(Equal(int64(1)))
			Expect(snap.AvgDuration).To(Equal(150 * time.Millisecond))
			Expect(*snap.LastSuccess).To(Equal(at))
			Expect(*snap.LastFailure).To(Equal(at.Add(time.Second)))
			Expect(snap.LastError).To(Equal("connection refused"))
		})
	})

	Describe("durations", func() {
		It("should calculate percentiles correctly", func() {
			for i := 1; i <= 100; i++ {
				m.RecordSuccess(time.Now(), time.Duration(i)*time.Millisecond)
			}

			snap := m.Snapshot(endpoint)
			Expect(snap.P50Duration).To(BeNumerically("~", 50*time.Millisecond, 1*time.Millisecond))
			Expect(snap.P95Duration).To(BeNumerically("~", 95*time.Millisecond, 1*time.Millisecond))
			Expect(snap.P99Duration).To(BeNumerically("~", 99*time.Millisecond, 1*time.Millisecond))
		})

		It("should limit stored durations to 1000", func() {
			for i := 1; i <= 1500; i++ {
				m.RecordSuccess(time.Now(), time.Duration(i)*time.Millisecond)
			}

			snap := m.Snapshot(endpoint)
			Expect(snap.AvgDuration).To(BeNumerically(">", 500*time.Millisecond))
			Expect(snap.PollsSucceeded).To(Equal(int64(1500)))
		})
	})

	Describe("Snapshot", func() {
		It("should handle empty metrics", func() {
			snap := m.Snapshot(endpoint)

			Expect(snap.PollsStarted).To(BeZero())
			Expect(snap.AvgDuration).To(BeZero())
			Expect(snap.LastSuccess).To(BeNil())
			Expect(snap.LastFailure).To(BeNil())
		})

		It("should include uptime", func() {
			time.Sleep(10 * time.Millisecond)
			Expect(m.Snapshot(endpoint).Uptime).To(BeNumerically(">", 0))
		})

		It("should return independent snapshots", func() {
			m.RecordStarted()
			snap1 := m.Snapshot(endpoint)
			m.RecordStarted()
			snap2 := m.Snapshot(endpoint)

			Expect(snap1.PollsStarted).To(Equal(int64(1)))
			Expect(snap2.PollsStarted).To(Equal(int64(2)))
		})
	})
})
