package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/pyrelens/app"
	"github.com/ardnew/pyrelens/log"
	"github.com/ardnew/pyrelens/pkg"
	"github.com/ardnew/pyrelens/sampler"
)

// Attach samples a running Python process with py-spy and views the
// cumulative flame graph live.
type Attach struct {
	Pid       int      `arg:""                             help:"Process id of the Python program to sample"`
	PySpyArgs []string `arg:"" optional:"" passthrough:""  help:"Extra arguments passed through to py-spy"`

	Window        time.Duration `default:"1s"    help:"Duration of each py-spy recording window"`
	Interval      time.Duration `default:"100ms" help:"UI refresh interval"`
	CaseSensitive bool          `default:"true"  help:"Case-sensitive search patterns" negatable:""`
}

// Run executes the attach command.
func (a *Attach) Run(ctx context.Context) (err error) {
	if a.Pid <= 0 {
		return pkg.ErrNoInput
	}

	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cmdline, _ := sampler.Cmdline(a.Pid)

	in := app.Input{Kind: app.InputPid, Pid: a.Pid, Cmdline: cmdline}
	session := app.New(in, nil)
	raw := &sampler.Mailbox[sampler.Output]{}

	log.InfoContext(ctx, "attaching sampler",
		slog.Int("pid", a.Pid),
		slog.String("cmdline", cmdline),
		slog.Duration("window", a.Window),
	)

	spy := &sampler.PySpy{Pid: a.Pid, Args: a.PySpyArgs, Window: a.Window}

	go spy.Record(ctx, raw, session.SamplerState())
	go sampler.Collect(ctx, raw, session.Mailbox(), 0)

	return runSession(ctx, session, a.Interval, a.CaseSensitive)
}
