package cmd

import (
	"testing"
	"time"
)

// namedMode mimics an enum flag value backed by a named string type.
type namedMode string

// TestYAMLValue tests the yamlValue conversion with different flag types.
func TestYAMLValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
		{
			name: "bool_true",
			in:   true,
			want: true,
		},
		{
			name: "string_value",
			in:   "cpu.folded",
			want: "cpu.folded",
		},
		{
			name: "empty_string",
			in:   "",
			want: nil, // empty strings should be omitted
		},
		{
			name: "int_value",
			in:   42,
			want: 42,
		},
		{
			name: "float_value",
			in:   3.14,
			want: 3.14,
		},
		{
			name: "named_string_type",
			in:   namedMode("debug"),
			want: "debug",
		},
		{
			name: "empty_named_string_type",
			in:   namedMode(""),
			want: nil,
		},
		{
			name: "duration",
			in:   100 * time.Millisecond,
			want: "100ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := yamlValue(tt.in)
			if got != tt.want {
				t.Errorf("yamlValue(%v) = %v (%T), want %v",
					tt.in, got, got, tt.want)
			}
		})
	}
}

func TestYAMLValueStringSlice(t *testing.T) {
	t.Parallel()

	if got := yamlValue([]string{}); got != nil {
		t.Errorf("empty slice yielded %v, want nil", got)
	}

	got, ok := yamlValue([]string{"a", "b"}).([]string)
	if !ok || len(got) != 2 {
		t.Errorf("slice yielded %v, want [a b]", got)
	}
}
