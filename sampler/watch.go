package sampler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/pyrelens/log"
)

// Watch publishes the contents of a folded-stack file to raw, then
// republishes it every time the file changes, so static-file mode flows
// through the same mailbox and tick path as live sampling.
//
// The watch is placed on the containing directory: editors and profilers
// commonly replace files by rename, which drops a watch registered on the
// file itself. Runs until ctx is done. Failure to establish the watch is
// reported through st and ends the loop; the initial contents published
// before that remain valid.
func Watch(ctx context.Context, path string, raw *Mailbox[Output], st *State) {
	st.SetRunning()

	publish := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			// Transient: a rename-replace briefly leaves no file behind.
			log.WarnContext(ctx, "read folded file",
				slog.String("path", path),
				slog.Any("error", err),
			)

			return
		}

		st.AddSnapshot()
		raw.Put(Output{Data: string(data), Taken: time.Now()})
	}

	publish()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		st.SetError(err.Error())

		return
	}

	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		st.SetError(err.Error())

		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}

			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				publish()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			log.WarnContext(ctx, "file watch error",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}
}
