package op

import "context"

// Method is an HTTP request method.
type Method string

// The methods rester scripts can issue.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Client is the minimal HTTP surface operations are performed against. It
// returns the response body as a string. Implementations and decorators of
// this interface are interchangeable, which keeps operations testable with
// a recording fake.
type Client interface {
	SendRequest(ctx context.Context, url string, method Method, data map[string]any, headers map[string]string) (string, error)
}

// Operation is a unit of work in a rester script. Perform executes it
// against the given client; Result returns the outcome of the most recent
// Perform, or nil if the operation has not run yet.
type Operation interface {
	Perform(ctx context.Context, client Client) error
	Result() any
}
