package sampler

import (
	"sync"

	"github.com/ardnew/pyrelens/pkg"
)

// Status is the sampling collaborator's health signal.
type Status int

const (
	// StatusRunning indicates the sampler is attached and producing
	// snapshots (or legitimately has none yet).
	StatusRunning Status = iota
	// StatusError indicates the sampler failed unrecoverably, for example
	// from insufficient privilege. This must surface as a terminal failure:
	// silent stalling is indistinguishable from "no new samples yet".
	StatusError
)

// State is the small shared status record between the sampling goroutine
// and the UI tick. Safe for concurrent use; the lock is held only for the
// instant of read or write.
type State struct {
	mu        sync.Mutex
	status    Status
	message   string
	snapshots uint64
}

// SetRunning marks the sampler healthy.
func (s *State) SetRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusRunning
	s.message = ""
}

// SetError marks the sampler failed with the given diagnostic message.
func (s *State) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusError
	s.message = message
}

// Status returns the current status and its diagnostic message.
func (s *State) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status, s.message
}

// AddSnapshot records one produced snapshot for the debug overlay.
func (s *State) AddSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots++
}

// Snapshots returns the number of snapshots produced so far.
func (s *State) Snapshots() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshots
}

// Err returns a fatal error wrapping [pkg.ErrSamplerExited] when the
// sampler has failed, or nil while it is healthy.
func (s *State) Err() error {
	status, message := s.Status()
	if status != StatusError {
		return nil
	}

	return pkg.ErrSamplerExited.Wrapf("%s", message)
}
