package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSinkReceivesLines(t *testing.T) {
	t.Parallel()

	var (
		buf   bytes.Buffer
		lines []string
	)

	l := Make(&buf,
		WithTimeLayout("none"),
		WithSink(func(s string) { lines = append(lines, s) }),
	)

	l.Info("watching file", slog.String("path", "cpu.folded"))
	l.Warn("watch dropped")

	if len(lines) != 2 {
		t.Fatalf("sink received %d lines, want 2", len(lines))
	}

	if want := "INFO watching file path=cpu.folded"; lines[0] != want {
		t.Errorf("lines[0] = %q, want %q", lines[0], want)
	}

	if !strings.HasPrefix(lines[1], "WARN watch dropped") {
		t.Errorf("lines[1] = %q, want WARN prefix", lines[1])
	}

	// Primary output still receives every record.
	for _, want := range []string{"watching file", "watch dropped"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("primary output missing %q: %q", want, buf.String())
		}
	}
}

func TestSinkHonorsLevel(t *testing.T) {
	t.Parallel()

	var lines []string

	l := Make(nil,
		WithLevel(LevelWarn),
		WithSink(func(s string) { lines = append(lines, s) }),
	)

	l.Debug("dropped")
	l.Info("dropped")
	l.Error("kept")

	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ERROR kept") {
		t.Errorf("sink lines = %q, want single ERROR entry", lines)
	}
}

func TestSinkCarriesLoggerAttrs(t *testing.T) {
	t.Parallel()

	var lines []string

	l := Make(nil,
		WithSink(func(s string) { lines = append(lines, s) }),
	)
	l = l.With(slog.Int("pid", 1234))

	l.Info("attached")

	if len(lines) != 1 || !strings.Contains(lines[0], "pid=1234") {
		t.Errorf("sink lines = %q, want pid attribute", lines)
	}
}
