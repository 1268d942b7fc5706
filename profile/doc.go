// Package profile provides optional runtime profiling for the pyrelens
// application.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops with
// zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Using File-Based Profiling
//
// File-based profiling writes profiling data to disk for later analysis. The
// profiler is configured as a [Config] and started with [Config.Start]:
//
//	c := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	})
//	ctrl := c.Start()
//	defer ctrl.Stop()
//
//	// Application code runs here with profiling enabled
//
// Profile files are written to the specified directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The pyrelens command supports profiling through command-line flags when
// built with the pprof tag:
//
//	# Enable CPU profiling (writes to default cache directory)
//	pyrelens --pprof-mode cpu view cpu.folded
//
//	# Enable heap profiling with custom output directory
//	pyrelens --pprof-mode heap --pprof-dir ./profiles attach 12345
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/pyrelens/pprof   (Linux/Unix)
//	~/Library/Caches/pyrelens/pprof  (macOS)
//	%LocalAppData%\pyrelens\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data:
//
//	# Analyze a CPU profile
//	go tool pprof /tmp/profiles/cpu.pprof
//
//	# Open web UI with flame graphs and source annotations
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
//	# Compare two profiles
//	go tool pprof -base=old.pprof new.pprof
//
// # Performance Overhead
//
//   - CPU profiling: ~5% overhead
//   - Heap profiling: minimal overhead (sampled)
//   - Block profiling: can add significant overhead if rate is too high
//   - Mutex profiling: can add significant overhead if rate is too high
//   - Trace profiling: high overhead, use for short durations only
//
// Adjust sampling rates using [runtime.SetBlockProfileRate],
// [runtime.SetMutexProfileFraction], and [runtime.MemProfileRate].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
