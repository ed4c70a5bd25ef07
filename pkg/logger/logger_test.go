package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/health-widget/pkg/logger"
)

var _ = Describe("Logger", func() {
	ctx := context.Background()

	DescribeTable("ParseLevel",
		func(in string, want slog.Level) {
			Expect(logger.ParseLevel(in)).To(Equal(want))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("info", "info", slog.LevelInfo),
		Entry("warn", "WARN", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("unknown defaults to info", "verbose", slog.LevelInfo),
	)

	It("should respect the configured level", func() {
		log := logger.New("warn", false, "dev")
		Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeFalse())
		Expect(log.Enabled(ctx, slog.LevelWarn)).To(BeTrue())
	})

	It("should write text outside prod", func() {
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, "info", false, "dev")
		log.Info("Health poller started")

		Expect(buf.String()).To(ContainSubstring(`msg="Health poller started"`))
		Expect(buf.String()).To(ContainSubstring("environment=dev"))
		Expect(buf.String()).To(ContainSubstring("service=health-widget"))
	})

	It("should write JSON in prod", func() {
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, "info", false, "prod")
		log.Info("Health poll failed", slog.String("error", "connection refused"))

		var entry map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
		Expect(entry).To(HaveKeyWithValue("msg", "Health poll failed"))
		Expect(entry).To(HaveKeyWithValue("environment", "prod"))
		Expect(entry).To(HaveKeyWithValue("error", "connection refused"))
	})

	It("should include the source location when asked", func() {
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, "info", true, "prod")
		log.Info("with source")

		var entry map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
		Expect(entry).To(HaveKey("source"))
	})
})
