package core

import "context"

// Generator is the opaque text-generation backend: ordered messages in,
// reply text out. Latency is unbounded from the core's perspective;
// transports bound it via ctx.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
