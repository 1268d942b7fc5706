// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("sampler started", slog.Int("pid", pid))
//	logger.Error("failed to parse", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Package-Level Logger
//
// A default logger writing to [os.Stderr] is available through
// package-level functions ([Debug], [Info], [Warn], [Error], and their
// context-aware variants). It is reconfigured with [Config]:
//
//	log.Config(log.WithOutput(f), log.WithLevel(log.LevelDebug))
//
// # Log Sinks
//
// A secondary sink can be attached with [WithSink] to receive each
// formatted log line as a plain string in addition to the primary
// output. The interactive viewer uses a sink to mirror log output into
// its in-memory log panel while the primary output goes to a file.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded.
package log
