package progrock

import (
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/rcpack/internal/core/ports"
)

// StatusLog is a progrock.Writer that reports each finished vertex once through a Logger.
// Failures are left to the caller, which prints the full error chain.
type StatusLog struct {
	log  ports.Logger
	mu   sync.Mutex
	done map[string]bool
}

// NewStatusLog creates a StatusLog writing to log.
func NewStatusLog(log ports.Logger) *StatusLog {
	return &StatusLog{log: log, done: make(map[string]bool)}
}

// WriteStatus logs vertices that completed in this update.
func (s *StatusLog) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || v.Error != nil {
			continue
		}
		key := v.Id + "@" + v.Completed.AsTime().String()
		if s.done[key] {
			continue
		}
		s.done[key] = true

		if v.Cached {
			s.log.Info(v.Name + " (cached)")
		} else {
			s.log.Info(v.Name)
		}
	}
	return nil
}

// Close does nothing.
func (s *StatusLog) Close() error { return nil }

// Fanout writes every status update to all writers.
type Fanout []progrock.Writer

// WriteStatus forwards update to every writer, returning the first error.
func (f Fanout) WriteStatus(update *progrock.StatusUpdate) error {
	var firstErr error
	for _, w := range f {
		if err := w.WriteStatus(update); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every writer, returning the first error.
func (f Fanout) Close() error {
	var firstErr error
	for _, w := range f {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
