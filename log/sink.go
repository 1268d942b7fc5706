package log

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// sinkHandler renders each record as a single plain text line and passes it
// to the configured sink function.
// Lines omit timestamps since the consumer displays entries in arrival order.
type sinkHandler struct {
	sink  func(string)
	level Level
	mu    *sync.Mutex
	attrs []slog.Attr
}

func newSinkHandler(cfg config) *sinkHandler {
	return &sinkHandler{
		sink:  cfg.sink,
		level: cfg.level,
		mu:    &sync.Mutex{},
	}
}

func (h *sinkHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.level)
}

func (h *sinkHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(strings.ToUpper(Level(r.Level).String()))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}

		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value.String())
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)

		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.sink(sb.String())

	return nil
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sinkHandler{
		sink:  h.sink,
		level: h.level,
		mu:    h.mu,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *sinkHandler) WithGroup(string) slog.Handler {
	return h
}

// teeHandler fans each record out to two handlers.
type teeHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func newTeeHandler(primary, secondary slog.Handler) *teeHandler {
	return &teeHandler{primary: primary, secondary: secondary}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.secondary.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	if h.primary.Enabled(ctx, r.Level) {
		if err := h.primary.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	if h.secondary.Enabled(ctx, r.Level) {
		if err := h.secondary.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}

	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{
		primary:   h.primary.WithAttrs(attrs),
		secondary: h.secondary.WithAttrs(attrs),
	}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{
		primary:   h.primary.WithGroup(name),
		secondary: h.secondary.WithGroup(name),
	}
}
