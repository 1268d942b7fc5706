// Package cli contains the command line interface for pyrelens.
//
// # Usage
//
// View a folded stack file, reloading as it grows:
//
//	pyrelens view profile.folded
//
// Attach to a running Python process (requires py-spy on PATH):
//
//	pyrelens attach 12345
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-file: Write logs to a file; without it log output is discarded
//     (the terminal is owned by the viewer), though log lines still reach
//     the in-viewer log panel
//   - --log-time: Set timestamp format (RFC3339, ms, none, ...)
//
// # Profiling Options
//
// Self-profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Configuration File
//
// Flag defaults are read from a YAML file at the user config path
// (for example ~/.config/pyrelens/config.yaml), written with
// "pyrelens init". Command-line flags override config file values.
package cli
