package op

import (
	"context"
	"fmt"

	"github.com/vk/rester/internal/ctxlog"
)

// Sequence performs its child operations in order. Every child sees the
// client wrapped with the sequence's base URL, so scripts can keep request
// paths relative.
type Sequence struct {
	ops     []Operation
	baseURL string
}

// NewSequence creates a sequence operation. baseURL may be empty, in which
// case child URLs are used verbatim.
func NewSequence(ops []Operation, baseURL string) *Sequence {
	return &Sequence{ops: ops, baseURL: baseURL}
}

// Perform runs every child in order and stops at the first failure.
func (s *Sequence) Perform(ctx context.Context, client Client) error {
	logger := ctxlog.FromContext(ctx)
	for i, operation := range s.ops {
		logger.Debug("Performing sequence step.", "index", i, "total", len(s.ops))
		if err := operation.Perform(ctx, WithBaseURL(client, s.baseURL)); err != nil {
			return fmt.Errorf("sequence step %d: %w", i, err)
		}
	}
	return nil
}

// Result returns the results of all children, in order.
func (s *Sequence) Result() any {
	results := make([]any, len(s.ops))
	for i, operation := range s.ops {
		results[i] = operation.Result()
	}
	return results
}
