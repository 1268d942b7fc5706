//go:build pprof

package profile

// Option accumulates one profiler argument onto a control.
type Option func(control) control

// apply folds multiple options onto a control in order.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// newControl creates a control from the provided options.
func newControl(opts ...Option) control {
	var c control

	return apply(c, opts...)
}
