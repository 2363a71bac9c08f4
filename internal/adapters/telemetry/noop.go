// Package telemetry holds telemetry adapters that do not depend on a backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/rcpack/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

var _ ports.Telemetry = NoOp{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() NoOp {
	return NoOp{}
}

// Record returns a vertex that discards everything.
func (NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := noOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (NoOp) Close() error { return nil }

type noOpVertex struct{}

func (noOpVertex) Stdout() io.Writer { return io.Discard }
func (noOpVertex) Complete(error)    {}
func (noOpVertex) Cached()           {}
