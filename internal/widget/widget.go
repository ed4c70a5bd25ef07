package widget

import (
	"sync"
	"time"

	"github.com/angeloszaimis/health-widget/internal/health"
)

// State is the raw widget state. Report is kept across failures and Err,
// once set, is never cleared.
type State struct {
	Loaded bool
	Report *health.Report
	Err    error
}

type Widget struct {
	mutex  sync.RWMutex
	state  State
	active bool
	now    func() time.Time
}

type Option func(*Widget)

// WithClock sets the time source used by View.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) {
		w.now = now
	}
}

// New creates an active widget in the Loading state.
func New(opts ...Option) *Widget {
	w := &Widget{
		active: true,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Apply records the outcome of one poll. It returns false when the widget
// has been deactivated and the result was dropped.
func (w *Widget) Apply(report health.Report, err error) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.active {
		return false
	}

	w.state.Loaded = true

	if err != nil {
		if w.state.Err == nil {
			w.state.Err = err
		}
		return true
	}

	w.state.Report = &report
	return true
}

// Deactivate stops the widget from accepting further results.
func (w *Widget) Deactivate() {
	w.mutex.Lock()
	w.active = false
	w.mutex.Unlock()
}

func (w *Widget) Active() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.active
}

// Failed reports whether the widget has entered the Error state.
func (w *Widget) Failed() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.state.Err != nil
}

// State returns a copy of the current state.
func (w *Widget) State() State {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	state := w.state
	if state.Report != nil {
		report := *state.Report
		state.Report = &report
	}

	return state
}

// View derives the display model at the widget clock's current time.
func (w *Widget) View() View {
	return NewView(w.State(), w.now())
}
