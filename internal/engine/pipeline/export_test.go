package pipeline

import "go.trai.ch/rcpack/internal/core/domain"

// SetClock replaces the clock stamping build info records.
// This is exported for testing purposes only.
func (p *Pipeline) SetClock(clock domain.Clock) {
	p.clock = clock
}
