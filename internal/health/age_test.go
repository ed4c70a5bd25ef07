package health_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/health-widget/internal/health"
)

var _ = Describe("AgeMinutes", func() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	It("should report five minutes for five and a half minutes elapsed", func() {
		now := time.Date(2024, 1, 1, 0, 5, 30, 0, time.UTC)
		Expect(health.AgeMinutes(now, base)).To(Equal(int64(5)))
	})

	It("should be zero when now equals lastUpdated", func() {
		Expect(health.AgeMinutes(base, base)).To(Equal(int64(0)))
	})

	It("should equal elapsed milliseconds divided by 60000 for non-negative ages", func() {
		for _, elapsed := range []time.Duration{
			999 * time.Millisecond,
			59*time.Second + 999*time.Millisecond,
			time.Minute,
			61 * time.Minute,
			36*time.Hour + 17*time.Second,
		} {
			got := health.AgeMinutes(base.Add(elapsed), base)
			Expect(got).To(Equal(elapsed.Milliseconds()/60000), elapsed.String())
			Expect(got).To(BeNumerically(">=", 0))
		}
	})

	It("should round toward negative infinity when lastUpdated is in the future", func() {
		Expect(health.AgeMinutes(base.Add(-30*time.Second), base)).To(Equal(int64(-1)))
		Expect(health.AgeMinutes(base.Add(-1*time.Millisecond), base)).To(Equal(int64(-1)))
		Expect(health.AgeMinutes(base.Add(-61*time.Second), base)).To(Equal(int64(-2)))
	})
})
