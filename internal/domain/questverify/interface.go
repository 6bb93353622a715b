package questverify

import (
	"context"
	"fmt"
)

// Result is the outcome of running one verifier over a completion claim.
// Expected failures (bad key, unreachable server, blocked URL, wrong
// signature) are returned as Valid=false with a safe message, never as an
// error; errors are reserved for faults of this platform itself.
type Result struct {
	Valid   bool
	Message string
	Data    map[string]any
}

func accepted(msg string) Result {
	return Result{Valid: true, Message: msg}
}

func rejected(msg string, a ...any) Result {
	return Result{Valid: false, Message: fmt.Sprintf(msg, a...)}
}

// Verifier decides whether a user's claim of completing a quest is true.
// Implementations are stateless per request; everything they need is in the
// claim, the quest configuration they were built with, and the context.
type Verifier interface {
	Verify(ctx context.Context, claim map[string]any) (Result, error)
}
