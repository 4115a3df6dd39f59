package op

import "context"

// Request is a single HTTP request operation. Its result is the response
// body of the most recent Perform.
type Request struct {
	URL    string
	Method Method
	Data   map[string]any

	result string
	done   bool
}

// NewRequest creates a request operation. A nil data map is allowed.
func NewRequest(url string, method Method, data map[string]any) *Request {
	return &Request{URL: url, Method: method, Data: data}
}

// Perform issues the request through the given client and records the
// response body.
func (r *Request) Perform(ctx context.Context, client Client) error {
	result, err := client.SendRequest(ctx, r.URL, r.Method, r.Data, nil)
	if err != nil {
		return err
	}
	r.result = result
	r.done = true
	return nil
}

// Result returns the response body, or nil before the first successful
// Perform.
func (r *Request) Result() any {
	if !r.done {
		return nil
	}
	return r.result
}
