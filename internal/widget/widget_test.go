package widget_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/health-widget/internal/health"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

func sampleReport() health.Report {
	return health.Report{
		ReceiverHealth:   "OK",
		StorageHealth:    "OK",
		ProcessingHealth: "DEGRADED",
		AuditHealth:      "OK",
		LastUpdated:      health.ParseTimestamp("2024-01-01T00:00:00Z"),
	}
}

var _ = Describe("Widget", func() {
	var (
		w   *widget.Widget
		now time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 1, 1, 0, 5, 30, 0, time.UTC)
		w = widget.New(widget.WithClock(func() time.Time { return now }))
	})

	Describe("New", func() {
		It("should start active and loading", func() {
			Expect(w.Active()).To(BeTrue())
			Expect(w.State().Loaded).To(BeFalse())
			Expect(w.State().Report).To(BeNil())
			Expect(w.Failed()).To(BeFalse())
		})

		It("should render only the loading placeholder", func() {
			Expect(w.View()).To(Equal(widget.View{
				Phase:   widget.PhaseLoading,
				Message: "Loading...",
			}))
		})
	})

	Describe("Apply", func() {
		It("should move to Ready on the first success", func() {
			Expect(w.Apply(sampleReport(), nil)).To(BeTrue())

			view := w.View()
			Expect(view.Phase).To(Equal(widget.PhaseReady))
			Expect(view.Title).To(Equal("Latest Health Stats"))
			Expect(view.Rows).To(Equal([]widget.Row{
				{Component: "Receiver", Health: "OK"},
				{Component: "Storage", Health: "OK"},
				{Component: "Processing", Health: "DEGRADED"},
				{Component: "Audit", Health: "OK"},
			}))
			Expect(*view.AgeMinutes).To(Equal(int64(5)))
			Expect(view.Heading).To(Equal("Last Updated: 5 minutes ago"))
		})

		It("should replace the report on subsequent successes", func() {
			w.Apply(sampleReport(), nil)

			next := sampleReport()
			next.ProcessingHealth = "OK"
			next.LastUpdated = health.ParseTimestamp("2024-01-01T00:05:00Z")
			w.Apply(next, nil)

			view := w.View()
			Expect(view.Rows[2].Health).To(Equal("OK"))
			Expect(view.Heading).To(Equal("Last Updated: 0 minutes ago"))
		})

		It("should move to Error on the first failure", func() {
			w.Apply(health.Report{}, errors.New("connection refused"))

			Expect(w.State().Loaded).To(BeTrue())
			Expect(w.Failed()).To(BeTrue())
			Expect(w.View()).To(Equal(widget.View{
				Phase:   widget.PhaseError,
				Message: "Error: connection refused",
			}))
		})

		It("should keep showing Error after later successes", func() {
			w.Apply(health.Report{}, errors.New("connection refused"))
			w.Apply(sampleReport(), nil)
			w.Apply(sampleReport(), nil)

			view := w.View()
			Expect(view.Phase).To(Equal(widget.PhaseError))
			Expect(view.Message).To(Equal("Error: connection refused"))
			Expect(view.Rows).To(BeEmpty())
		})

		It("should keep the first error when a second failure arrives", func() {
			w.Apply(health.Report{}, errors.New("first"))
			w.Apply(health.Report{}, errors.New("second"))

			Expect(w.State().Err).To(MatchError("first"))
		})

		It("should retain the last good report underneath an error", func() {
			w.Apply(sampleReport(), nil)
			w.Apply(health.Report{}, errors.New("timeout"))

			state := w.State()
			Expect(state.Report).NotTo(BeNil())
			Expect(state.Report.ProcessingHealth).To(Equal(health.Label("DEGRADED")))
			Expect(w.View().Phase).To(Equal(widget.PhaseError))
		})

		It("should display labels verbatim", func() {
			w.Apply(health.Report{
				ReceiverHealth:   "",
				StorageHealth:    "null",
				ProcessingHealth: "undefined",
				AuditHealth:      "  spaced  ",
				LastUpdated:      health.ParseTimestamp("2024-01-01T00:00:00Z"),
			}, nil)

			rows := w.View().Rows
			Expect(rows[0].Health).To(Equal(""))
			Expect(rows[1].Health).To(Equal("null"))
			Expect(rows[2].Health).To(Equal("undefined"))
			Expect(rows[3].Health).To(Equal("  spaced  "))
		})

		It("should report an unknown age for an unparseable timestamp", func() {
			report := sampleReport()
			report.LastUpdated = health.ParseTimestamp("not a time")
			w.Apply(report, nil)

			view := w.View()
			Expect(view.Phase).To(Equal(widget.PhaseReady))
			Expect(view.AgeMinutes).To(BeNil())
			Expect(view.Heading).To(Equal("Last Updated: unknown"))
		})

		It("should recompute the age from the clock on every view", func() {
			w.Apply(sampleReport(), nil)
			Expect(w.View().Heading).To(Equal("Last Updated: 5 minutes ago"))

			now = now.Add(10 * time.Minute)
			Expect(w.View().Heading).To(Equal("Last Updated: 15 minutes ago"))
		})
	})

	Describe("Deactivate", func() {
		It("should drop results that arrive after teardown", func() {
			w.Apply(sampleReport(), nil)
			before := w.State()

			w.Deactivate()
			Expect(w.Active()).To(BeFalse())

			late := sampleReport()
			late.AuditHealth = "DOWN"
			Expect(w.Apply(late, nil)).To(BeFalse())
			Expect(w.Apply(health.Report{}, errors.New("late failure"))).To(BeFalse())

			Expect(w.State()).To(Equal(before))
		})

		It("should keep a loading widget loading", func() {
			w.Deactivate()
			w.Apply(sampleReport(), nil)

			Expect(w.State().Loaded).To(BeFalse())
			Expect(w.View().Phase).To(Equal(widget.PhaseLoading))
		})
	})

	Describe("State", func() {
		It("should return a copy of the report", func() {
			w.Apply(sampleReport(), nil)

			state := w.State()
			state.Report.AuditHealth = "MUTATED"

			Expect(w.State().Report.AuditHealth).To(Equal(health.Label("OK")))
		})
	})
})
