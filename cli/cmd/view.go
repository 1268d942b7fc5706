package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ardnew/pyrelens/app"
	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/log"
	"github.com/ardnew/pyrelens/pkg"
	"github.com/ardnew/pyrelens/sampler"
)

// View displays a folded stack file, optionally reloading it on change.
type View struct {
	File string `arg:"" default:"-" help:"Folded stack file, or '-' to read stdin once"`

	Follow        bool          `default:"true"  help:"Watch the file and reload on change" negatable:""`
	Interval      time.Duration `default:"100ms" help:"UI refresh interval"`
	CaseSensitive bool          `default:"true"  help:"Case-sensitive search patterns"      negatable:""`
}

// Run executes the view command.
func (v *View) Run(ctx context.Context) (err error) {
	if v.File == "" {
		return pkg.ErrNoInput
	}

	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if v.File == "-" {
		return v.runStdin(ctx)
	}

	if _, err := os.Stat(v.File); err != nil {
		return ErrOpenInput.
			With(slog.String("file", v.File)).
			Wrap(err)
	}

	in := app.Input{Kind: app.InputFile, Path: v.File}

	if !v.Follow {
		data, err := os.ReadFile(v.File)
		if err != nil {
			return ErrOpenInput.
				With(slog.String("file", v.File)).
				Wrap(err)
		}

		a := app.New(in, flame.ParseString(string(data)))

		return runSession(ctx, a, v.Interval, v.CaseSensitive)
	}

	a := app.New(in, nil)
	raw := &sampler.Mailbox[sampler.Output]{}

	log.InfoContext(ctx, "watching folded file",
		slog.String("file", v.File),
	)

	// Watch publishes the initial snapshot before waiting for changes.
	go sampler.Watch(ctx, v.File, raw, a.SamplerState())
	go sampler.Collect(ctx, raw, a.Mailbox(), 0)

	return runSession(ctx, a, v.Interval, v.CaseSensitive)
}

// runStdin reads one folded snapshot from stdin. There is nothing to
// follow: the view is static.
func (v *View) runStdin(ctx context.Context) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ErrOpenInput.
			With(slog.String("file", "stdin")).
			Wrap(err)
	}

	in := app.Input{Kind: app.InputFile, Path: "stdin"}
	a := app.New(in, flame.ParseString(string(data)))

	return runSession(ctx, a, v.Interval, v.CaseSensitive)
}
