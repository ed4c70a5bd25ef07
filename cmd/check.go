package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/health-widget/internal/render"
	"github.com/angeloszaimis/health-widget/internal/widget"
)

var errCheckFailed = errors.New("health check failed")

func newCheckCmd(a *app) *cobra.Command {
	var (
		output  string
		timeout time.Duration
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Poll the endpoint once and print the widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			return check(ctx, a, cmd.OutOrStdout(), format, render.TextOptions{Color: !noColor})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "give up on the endpoint after this long (0 waits forever)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

// check performs a single poll and prints the resulting view. It returns
// errCheckFailed after printing when the poll failed.
func check(ctx context.Context, a *app, out io.Writer, format render.Format, opts render.TextOptions) error {
	w := widget.New()
	w.Apply(newFetcher(a.cfg, a.log).Fetch(ctx))

	view := w.View()
	if err := render.Write(out, view, format, opts); err != nil {
		return err
	}

	if view.Phase == widget.PhaseError {
		return errCheckFailed
	}

	return nil
}
