// Package metrics collects statistics about the widget's poll loop.
//
// The poller emits events on a buffered channel without blocking:
//   - poll_started when a request is issued
//   - poll_skipped when a tick fires while a request is still outstanding
//   - poll_succeeded and poll_failed when a request resolves
//
// A single goroutine applies events to an in-memory Metrics store, which backs
// the JSON snapshot, and mirrors them into Prometheus collectors on a private
// registry.
//
// Example usage:
//
//	collector := metrics.NewCollector(100, endpoint, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:     metrics.EventPollSucceeded,
//		Duration: 35 * time.Millisecond,
//	})
//
//	snapshot := collector.Snapshot()
//
// Remaining events are drained when the context passed to Start is cancelled.
package metrics
