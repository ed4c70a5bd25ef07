package main

import (
	"context"
	"log/slog"

	"github.com/angeloszaimis/health-widget/config"
	"github.com/angeloszaimis/health-widget/internal/health"
	"github.com/angeloszaimis/health-widget/internal/metrics"
	"github.com/angeloszaimis/health-widget/internal/poller"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

func newFetcher(cfg *config.Config, log *slog.Logger) *health.HTTPFetcher {
	return health.NewHTTPFetcher(cfg.Endpoint.URL,
		health.WithTimeout(cfg.RequestTimeout()),
		health.WithLogger(log))
}

// mountWidget creates a widget and starts the poller feeding it. The caller
// owns the returned poller and must Stop it to unmount the widget.
func mountWidget(ctx context.Context, cfg *config.Config, log *slog.Logger, collector *metrics.Collector) (*widget.Widget, *poller.Poller, error) {
	w := widget.New()

	pollLog := log.With(slog.String("endpoint", cfg.Endpoint.URL))

	p, err := poller.New(newFetcher(cfg, pollLog), w,
		poller.WithInterval(cfg.PollInterval()),
		poller.WithStopOnError(cfg.Poller.StopOnError),
		poller.WithLogger(pollLog),
		poller.WithMetrics(collector))
	if err != nil {
		return nil, nil, err
	}

	if err := p.Start(ctx); err != nil {
		return nil, nil, err
	}

	return w, p, nil
}
