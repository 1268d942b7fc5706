package sampler

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ardnew/pyrelens/log"
)

// DefaultWindow is the duration of each py-spy recording window.
const DefaultWindow = 1 * time.Second

// PySpy samples a running Python process by repeatedly invoking the
// external py-spy profiler in short recording windows and folding the
// windows into one cumulative snapshot, so the graph keeps aggregating for
// as long as the viewer is attached.
type PySpy struct {
	// Pid is the target process id.
	Pid int
	// Args are extra arguments passed through to py-spy verbatim
	// (for example --native or --subprocesses).
	Args []string
	// Window is the duration of each recording invocation.
	// Zero uses [DefaultWindow].
	Window time.Duration
	// Exe overrides the py-spy executable name for testing.
	Exe string

	counts map[string]uint64
}

// Record runs the sampling loop until ctx is done, publishing cumulative
// folded snapshots to raw and health to st.
//
// A py-spy invocation failing is unrecoverable (typically insufficient
// privilege or the target exiting) and is reported through st; the UI tick
// turns it into a terminal failure.
func (p *PySpy) Record(ctx context.Context, raw *Mailbox[Output], st *State) {
	exe := p.Exe
	if exe == "" {
		exe = "py-spy"
	}

	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}

	p.counts = make(map[string]uint64)
	st.SetRunning()

	dir, err := os.MkdirTemp("", "pyrelens-*")
	if err != nil {
		st.SetError(err.Error())

		return
	}

	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "samples.folded")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		args := append([]string{
			"record",
			"--pid", strconv.Itoa(p.Pid),
			"--format", "raw",
			"--output", out,
			"--duration", strconv.Itoa(int(window.Seconds())),
		}, p.Args...)

		cmd := exec.CommandContext(ctx, exe, args...)

		var stderr bytes.Buffer

		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return
			}

			message := strings.TrimSpace(stderr.String())
			if message == "" {
				message = err.Error()
			}

			log.ErrorContext(ctx, "py-spy record failed",
				slog.Int("pid", p.Pid),
				slog.Any("error", err),
			)
			st.SetError(message)

			return
		}

		data, err := os.ReadFile(out)
		if err != nil {
			st.SetError(err.Error())

			return
		}

		p.merge(string(data))
		st.AddSnapshot()
		raw.Put(Output{Data: p.fold(), Taken: time.Now()})
	}
}

// merge accumulates one recording window into the cumulative counts.
// Lines the parser would reject are skipped here for the same reason:
// partial profiler output must not poison the whole sample.
func (p *PySpy) merge(data string) {
	for line := range strings.SplitSeq(data, "\n") {
		line = strings.TrimRight(line, " \t\r")

		cut := strings.LastIndexAny(line, " \t")
		if cut < 0 {
			continue
		}

		count, err := strconv.ParseUint(line[cut+1:], 10, 64)
		if err != nil {
			continue
		}

		if path := line[:cut]; strings.TrimSpace(path) != "" {
			p.counts[path] += count
		}
	}
}

// fold serializes the cumulative counts to folded-stack text with
// deterministic line order.
func (p *PySpy) fold() string {
	paths := make([]string, 0, len(p.counts))

	for path := range p.counts {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	var sb strings.Builder

	for _, path := range paths {
		sb.WriteString(path)
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatUint(p.counts[path], 10))
		sb.WriteByte('\n')
	}

	return sb.String()
}
