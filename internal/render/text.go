package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/angeloszaimis/health-widget/internal/widget"
)

type TextOptions struct {
	// Color highlights labels and errors with ANSI colors.
	Color bool
}

// Text writes the view as plain lines, one table row per component.
func Text(w io.Writer, view widget.View, opts TextOptions) error {
	var b strings.Builder

	switch view.Phase {
	case widget.PhaseError:
		b.WriteString(paint(opts, color.FgRed, view.Message))
		b.WriteByte('\n')

	case widget.PhaseLoading:
		b.WriteString(view.Message)
		b.WriteByte('\n')

	default:
		b.WriteString(paint(opts, color.OpBold, view.Title))
		b.WriteByte('\n')
		for _, row := range view.Rows {
			fmt.Fprintf(&b, "%-12s%s\n", row.Component+":", paint(opts, labelColor(row.Health), row.Health))
		}
		b.WriteString(view.Heading)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func paint(opts TextOptions, c color.Color, s string) string {
	if !opts.Color || s == "" {
		return s
	}
	return c.Render(s)
}

// labelColor picks a color for well-known labels. The label text itself is
// never changed.
func labelColor(label string) color.Color {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "OK", "UP", "HEALTHY", "RUNNING":
		return color.FgGreen
	case "DOWN", "ERROR", "FAILED", "UNHEALTHY":
		return color.FgRed
	default:
		return color.FgYellow
	}
}
