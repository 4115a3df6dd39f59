// Package httpclient provides the production implementation of op.Client,
// backed by resty.
package httpclient

import (
	"context"
	"fmt"

	"github.com/vk/rester/internal/ctxlog"
	"github.com/vk/rester/internal/op"
	resty "resty.dev/v3"
)

// Client issues real HTTP requests for the operation engine.
type Client struct {
	rc *resty.Client
}

// New creates a Client. Callers own its lifecycle and should Close it when
// the run is over.
func New() *Client {
	return &Client{rc: resty.New()}
}

// Close releases idle connections held by the underlying client.
func (c *Client) Close() error {
	return c.rc.Close()
}

// SendRequest implements op.Client. Data is sent as query parameters for
// GET and DELETE and as a JSON body for POST and PUT. Responses outside the
// 2xx range are errors; the response body is returned as a string.
func (c *Client) SendRequest(ctx context.Context, url string, method op.Method, data map[string]any, headers map[string]string) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Sending HTTP request.", "method", string(method), "url", url)

	req := c.rc.R().SetContext(ctx)
	if headers != nil {
		req.SetHeaders(headers)
	}

	switch method {
	case op.MethodGet, op.MethodDelete:
		if len(data) > 0 {
			params := make(map[string]string, len(data))
			for k, v := range data {
				params[k] = fmt.Sprintf("%v", v)
			}
			req.SetQueryParams(params)
		}
	case op.MethodPost, op.MethodPut:
		if data != nil {
			req.SetBody(data)
		}
	default:
		return "", fmt.Errorf("unsupported method %q", method)
	}

	res, err := req.Execute(string(method), url)
	if err != nil {
		return "", fmt.Errorf("request %s %s failed: %w", method, url, err)
	}

	logger.Info("Received HTTP response.", "status", res.Status())

	if res.IsError() {
		return "", fmt.Errorf("request %s %s returned status %d: %s", method, url, res.StatusCode(), res.String())
	}
	return res.String(), nil
}
