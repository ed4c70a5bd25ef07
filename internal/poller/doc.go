// Package poller drives a widget from a health endpoint. It polls once when
// started and then on every tick of a fixed interval until stopped.
//
// At most one request is in flight; a tick that fires while a request is
// outstanding is skipped. Stopping cancels the ticker and any in-flight
// request, and deactivates the widget so that a result resolving after
// teardown is discarded.
package poller
