package cmd

import (
	"context"
	"time"

	"github.com/ardnew/pyrelens/app"
	"github.com/ardnew/pyrelens/log"
	"github.com/ardnew/pyrelens/ui"
)

// runSession attaches the log sink to the session's log panel and drives
// the interactive viewer until quit or sampler failure.
func runSession(
	ctx context.Context,
	a *app.App,
	interval time.Duration,
	caseSensitive bool,
) error {
	log.Config(log.WithSink(a.PushLog))
	a.EnableLogSink()

	return ui.Run(ctx, a,
		ui.WithTickInterval(interval),
		ui.WithCaseSensitive(caseSensitive),
	)
}
