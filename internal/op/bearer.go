package op

import (
	"context"
	"fmt"
)

// DefaultBearerPrefix is the scheme used in the Authorization header when a
// script does not specify one.
const DefaultBearerPrefix = "Bearer"

// BearerAuth performs an authentication operation first, then performs the
// protected request with the authentication result injected as an
// Authorization header.
type BearerAuth struct {
	auth    Operation
	request Operation
	prefix  string
}

// NewBearerAuth creates a bearer-auth operation. An empty prefix selects
// DefaultBearerPrefix.
func NewBearerAuth(auth, request Operation, prefix string) *BearerAuth {
	if prefix == "" {
		prefix = DefaultBearerPrefix
	}
	return &BearerAuth{auth: auth, request: request, prefix: prefix}
}

// Perform runs the auth operation, then the request with the token header.
func (b *BearerAuth) Perform(ctx context.Context, client Client) error {
	if err := b.auth.Perform(ctx, client); err != nil {
		return fmt.Errorf("bearer auth: %w", err)
	}
	token := fmt.Sprintf("%v", b.auth.Result())
	return b.request.Perform(ctx, WithHeaders(client, map[string]string{
		"Authorization": b.prefix + " " + token,
	}))
}

// Result returns the protected request's result.
func (b *BearerAuth) Result() any {
	return b.request.Result()
}
