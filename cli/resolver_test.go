package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func flagNamed(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestLoadYAML_Resolve(t *testing.T) {
	t.Parallel()

	src := `
log-level: debug
log_format: text
interval: 250ms
follow: false
`

	resolver, err := loadYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("loadYAML failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{flag: "log-level", want: "debug"},
		// Underscore keys resolve hyphenated flag names.
		{flag: "log-format", want: "text"},
		{flag: "interval", want: "250ms"},
		{flag: "follow", want: false},
		{flag: "unset", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.Resolve(nil, nil, flagNamed(tt.flag))
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v (%T), want %v", tt.flag, got, got, tt.want)
			}
		})
	}
}

func TestLoadYAML_NumbersBecomeStrings(t *testing.T) {
	t.Parallel()

	resolver, err := loadYAML(strings.NewReader("window: 5\nratio: 0.5\n"))
	if err != nil {
		t.Fatalf("loadYAML failed: %v", err)
	}

	got, _ := resolver.Resolve(nil, nil, flagNamed("window"))
	if got != "5" {
		t.Errorf("integer resolved as %v (%T), want string \"5\"", got, got)
	}

	got, _ = resolver.Resolve(nil, nil, flagNamed("ratio"))
	if got != "0.5" {
		t.Errorf("float resolved as %v (%T), want string \"0.5\"", got, got)
	}
}

func TestLoadYAML_InvalidFileIsEmptyConfig(t *testing.T) {
	t.Parallel()

	resolver, err := loadYAML(strings.NewReader("::: not yaml {"))
	if err != nil {
		t.Fatalf("loadYAML returned error for invalid input: %v", err)
	}

	got, err := resolver.Resolve(nil, nil, flagNamed("log-level"))
	if err != nil || got != nil {
		t.Errorf("Resolve on empty config = %v, %v; want nil, nil", got, err)
	}
}
