package profile

// Config supplies the pprof parameters as a closure so the CLI layer can
// build it up from flag values one option at a time.
type Config func() (mode, path string, quiet bool)

// Start initializes the profiler and returns an interface for stopping it.
//
// The mode selects which profiler runs, and the path is the output
// directory where profiling data is written.
//
// Without the pprof build tag, or with an empty mode, Start returns a
// no-op implementation. Both Start and Stop are always safely callable,
// so the viewer's run path does not branch on whether profiling is built
// in.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option selecting the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithPath returns a functional option selecting the output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithQuiet returns a functional option suppressing the profiler's own
// console output, which would otherwise corrupt the viewer's alt-screen.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
