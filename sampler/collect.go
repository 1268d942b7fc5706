package sampler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/log"
)

// DefaultPollInterval is how often the parse loop checks for a new raw
// snapshot. Sub-second keeps the display fresh without burning a core.
const DefaultPollInterval = 250 * time.Millisecond

// Collect runs the parse loop: it polls raw for the latest snapshot,
// parses it into a graph (timing the parse), and publishes the result to
// next, overwriting any graph the consumer has not yet picked up.
//
// Parsing happens entirely in this goroutine before publishing, so the
// consumer only ever takes fully built graphs. Runs until ctx is done.
func Collect(
	ctx context.Context,
	raw *Mailbox[Output],
	next *Mailbox[Parsed],
	interval time.Duration,
) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if out, ok := raw.Take(); ok {
			tic := time.Now()
			g := flame.ParseString(out.Data)
			elapsed := time.Since(tic)

			next.Put(Parsed{Graph: g, Elapsed: elapsed})

			log.DebugContext(ctx, "snapshot parsed",
				slog.Uint64("samples", g.Samples()),
				slog.Int("frames", g.Frames()),
				slog.Duration("elapsed", elapsed),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
