package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/diskspace/pkg/output"
)

func newWatchCmd(opts *options, logger *logrus.Logger) *cobra.Command {
	var (
		every  time.Duration
		window int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report capacity repeatedly until interrupted",
		Long: `watch refreshes the report on a fixed tick. Each sensor still probes its
path at most once per scan interval and serves the cached value between
probes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts, logger)
			if err != nil {
				return err
			}
			a.formatter.SetTrendTracker(output.NewTrendTracker(window))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, every)
		},
	}

	cmd.Flags().DurationVarP(&every, "every", "e", 10*time.Second, "refresh period")
	cmd.Flags().IntVar(&window, "trend", output.DefaultTrendWindow, "number of readings kept for the trend column")
	return cmd
}

func (a *app) watch(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = 10 * time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := a.formatter.Render(a.update(ctx)); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			a.logger.Debug("Watch stopped")
			a.reportTimings()
			return nil
		case <-ticker.C:
		}
	}
}
