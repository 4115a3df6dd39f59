package op

import "context"

// Constant is an operation that performs nothing and yields a fixed value.
// Plain value definitions in a script behave as constants when run.
type Constant struct {
	value any
}

// NewConstant creates a constant operation.
func NewConstant(value any) *Constant {
	return &Constant{value: value}
}

// Perform is a no-op.
func (c *Constant) Perform(ctx context.Context, client Client) error {
	return nil
}

// Result returns the fixed value.
func (c *Constant) Result() any {
	return c.value
}
