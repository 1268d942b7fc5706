package log

// Option adjusts one logger configuration setting. Options compose left
// to right, so later options win on conflict.
type Option func(config) config

// apply folds multiple options onto a config in order.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}
