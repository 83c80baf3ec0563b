package utils

import (
	"context"
)

// Identity is the decoded token payload attached to authenticated requests.
type Identity struct {
	Email string
	Role  string
}

type contextKey string

const ContextIdentityKey contextKey = "identity"

func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ContextIdentityKey).(Identity)
	return ident, ok
}
