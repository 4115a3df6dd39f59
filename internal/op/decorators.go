package op

import "context"

// baseURLClient prefixes every request URL with a fixed base.
type baseURLClient struct {
	inner Client
	base  string
}

// WithBaseURL returns a client that resolves request URLs against base.
// An empty base returns the inner client unchanged.
func WithBaseURL(client Client, base string) Client {
	if base == "" {
		return client
	}
	return &baseURLClient{inner: client, base: base}
}

func (c *baseURLClient) SendRequest(ctx context.Context, url string, method Method, data map[string]any, headers map[string]string) (string, error) {
	return c.inner.SendRequest(ctx, c.base+url, method, data, headers)
}

// headersClient supplies default headers for requests that pass none.
type headersClient struct {
	inner   Client
	headers map[string]string
}

// WithHeaders returns a client that uses the given headers whenever a
// request does not carry its own. Explicitly passed headers win outright.
func WithHeaders(client Client, headers map[string]string) Client {
	return &headersClient{inner: client, headers: headers}
}

func (c *headersClient) SendRequest(ctx context.Context, url string, method Method, data map[string]any, headers map[string]string) (string, error) {
	if headers == nil {
		headers = c.headers
	}
	return c.inner.SendRequest(ctx, url, method, data, headers)
}
