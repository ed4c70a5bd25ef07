package widget

import (
	"fmt"
	"time"

	"github.com/angeloszaimis/health-widget/internal/health"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

const (
	Title          = "Latest Health Stats"
	LoadingMessage = "Loading..."
)

// Row is one component line of the status table.
type Row struct {
	Component string `json:"component" yaml:"component"`
	Health    string `json:"health" yaml:"health"`
}

// View is everything a renderer needs. Only the fields relevant to Phase
// are populated.
type View struct {
	Phase       Phase  `json:"phase" yaml:"phase"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Rows        []Row  `json:"rows,omitempty" yaml:"rows,omitempty"`
	AgeMinutes  *int64 `json:"age_minutes,omitempty" yaml:"age_minutes,omitempty"`
	LastUpdated string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Heading     string `json:"heading,omitempty" yaml:"heading,omitempty"`
}

// NewView derives the view for state at time now. Error wins over Loading,
// Loading over Ready.
func NewView(state State, now time.Time) View {
	switch {
	case state.Err != nil:
		return View{
			Phase:   PhaseError,
			Message: "Error: " + state.Err.Error(),
		}
	case !state.Loaded || state.Report == nil:
		return View{
			Phase:   PhaseLoading,
			Message: LoadingMessage,
		}
	}

	report := state.Report
	view := View{
		Phase: PhaseReady,
		Title: Title,
		Rows: []Row{
			{Component: "Receiver", Health: report.ReceiverHealth.String()},
			{Component: "Storage", Health: report.StorageHealth.String()},
			{Component: "Processing", Health: report.ProcessingHealth.String()},
			{Component: "Audit", Health: report.AuditHealth.String()},
		},
		LastUpdated: report.LastUpdated.Raw,
		Heading:     "Last Updated: unknown",
	}

	if report.LastUpdated.Valid {
		age := health.AgeMinutes(now, report.LastUpdated.Time)
		view.AgeMinutes = &age
		view.Heading = fmt.Sprintf("Last Updated: %d minutes ago", age)
	}

	return view
}
