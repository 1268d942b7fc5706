package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pyrelens/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level  logLevel  `default:"info" enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format logFormat `default:"text" enum:"text,json"                   help:"Set log format."`
	File   string    `                                                  help:"Write logs to this file (discarded without one)." type:"path"`
	Time   string    `default:"ms"                                      help:"Set timestamp format."`
	Caller bool      `default:"false"                                   help:"Include caller information." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start finalizes logger configuration with all parsed values and opens the
// log file if one was requested. The viewer owns the terminal, so without a
// file the primary output is discarded; log lines still reach the in-viewer
// log panel through the sink.
//
// The returned stop function closes the log file.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	var out io.Writer = io.Discard

	cleanup := func() {}

	if f.File != "" {
		file, err := os.OpenFile(
			f.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600,
		)
		if err == nil {
			out = file
			cleanup = func() { _ = file.Close() }
		}
	}

	log.Config(
		log.WithOutput(out),
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.Time),
		log.WithCaller(f.Caller),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("file", f.File),
		slog.String("time", f.Time),
		slog.Bool("caller", f.Caller),
	)

	return cleanup
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// While logFormat and logLevel types implement encoding.TextUnmarshaler to
// configure the logger as flags are encountered during parsing, this
// pre-scan applies them before Kong prints any parse errors.
func (f *logConfig) scan(args []string) {
	const logPrefix = "--log-"

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < len(logPrefix) || arg[:len(logPrefix)] != logPrefix {
			continue
		}

		name, value := arg, ""
		assigned := false

		for j := len(logPrefix); j < len(arg); j++ {
			if arg[j] == '=' {
				name, value = arg[:j], arg[j+1:]
				assigned = true

				break
			}
		}

		// Non-boolean flags consume the next arg as value if not assigned.
		if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
			args[i+1][0] != '-' {
			value = args[i+1]
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(value))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(value))
		}
	}
}
