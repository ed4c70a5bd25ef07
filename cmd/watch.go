package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/health-widget/internal/render"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

const clearScreen = "\033[H\033[2J"

var errWidgetFailed = errors.New("health widget entered error state")

type watchOptions struct {
	noColor bool
	noClear bool
}

func newWatchCmd(a *app) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render the widget in the terminal until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return watch(ctx, a, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&opts.noClear, "no-clear", false, "append renders instead of clearing the screen")

	return cmd
}

// watch re-renders the widget every poll interval. It returns errWidgetFailed
// once polling has halted on an error.
func watch(ctx context.Context, a *app, out io.Writer, opts watchOptions) error {
	w, p, err := mountWidget(ctx, a.cfg, a.log, nil)
	if err != nil {
		return err
	}
	defer p.Stop()

	textOpts := render.TextOptions{Color: !opts.noColor}

	draw := func() error {
		if !opts.noClear {
			if _, err := io.WriteString(out, clearScreen); err != nil {
				return err
			}
		}
		return render.Text(out, w.View(), textOpts)
	}

	ticker := time.NewTicker(a.cfg.PollInterval())
	defer ticker.Stop()

	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.Done():
			if err := draw(); err != nil {
				return err
			}
			if w.View().Phase == widget.PhaseError {
				return errWidgetFailed
			}
			return nil
		case <-ticker.C:
			if err := draw(); err != nil {
				return err
			}
		}
	}
}
