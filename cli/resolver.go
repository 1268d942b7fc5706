package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML config file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// The file is a flat mapping of flag names to values. Flag names with
// hyphens (e.g. "log-level") may use underscores in the file
// (e.g. "log_level"). Command-line flags override config file values.
//
// Example config file:
//
//	log-level: debug
//	log-format: text
//	interval: 100ms
//
// A file that fails to parse is treated as absent rather than fatal: the
// viewer must start with defaults instead of refusing to run over a stale
// config.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var raw map[string]any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return config{}, nil
	}

	values := make(config, len(raw))
	for key, val := range raw {
		values[key] = normalize(val)
	}

	return values, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed; the config was already parsed successfully.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g. "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found: let Kong use defaults.
	return nil, nil
}

// normalize converts YAML scalars to the representations Kong expects.
// Kong requires numbers as strings for parsing.
func normalize(val any) any {
	switch v := val.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out

	default:
		return v
	}
}
