package llm

import (
	"context"
)

// LLMClient is an opaque text-completion service. Implementations carry their
// own system instruction.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Completer is what the resolver needs from the model boundary: a completion
// that either returns text or a *ServiceError.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
