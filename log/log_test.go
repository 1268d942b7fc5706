package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMakeLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelWarn),
		WithTimeLayout("none"),
	)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept warn")
	l.Error("kept error")

	out := buf.String()

	if strings.Contains(out, "dropped") {
		t.Errorf("output contains messages below level: %q", out)
	}

	for _, want := range []string{"kept warn", "kept error"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestMakeJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithTimeLayout("none"),
	)

	l.Info("snapshot parsed", slog.Int("frames", 42))

	var record map[string]any

	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v: %q", err, buf.String())
	}

	if record["msg"] != "snapshot parsed" {
		t.Errorf("msg = %v, want %q", record["msg"], "snapshot parsed")
	}

	if record["frames"] != float64(42) {
		t.Errorf("frames = %v, want 42", record["frames"])
	}

	if _, ok := record["time"]; ok {
		t.Error("time key present with layout none")
	}
}

func TestTraceLevelLabel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)

	l.Trace("fine detail")

	out := buf.String()

	if !strings.Contains(out, "TRACE") {
		t.Errorf("output missing TRACE label: %q", out)
	}

	if strings.Contains(out, "DEBUG-4") {
		t.Errorf("output uses raw slog level: %q", out)
	}
}

func TestZeroValueLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var l Logger

	// None of these may panic.
	l.Info("ignored")
	l.Error("ignored")
	l = l.With(slog.String("k", "v"))
	l.Warn("ignored")

	if got := l.Level(); got != DefaultLevel {
		t.Errorf("zero value Level() = %v, want %v", got, DefaultLevel)
	}

	if got := l.Format(); got != DefaultFormat {
		t.Errorf("zero value Format() = %v, want %v", got, DefaultFormat)
	}
}

func TestWrapOverridesLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))

	l.Debug("before wrap")

	if buf.Len() != 0 {
		t.Fatalf("debug passed default level: %q", buf.String())
	}

	l = l.Wrap(WithLevel(LevelDebug))

	l.Debug("after wrap")

	if !strings.Contains(buf.String(), "after wrap") {
		t.Errorf("wrapped logger dropped debug message: %q", buf.String())
	}
}

func TestWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))
	l = l.With(slog.String("source", "py-spy"))

	l.Info("attached")

	if !strings.Contains(buf.String(), "source=py-spy") {
		t.Errorf("output missing attached attribute: %q", buf.String())
	}
}
