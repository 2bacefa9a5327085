// Package graphql
package graphql

import "context"

type identityKey struct{}

// Identity is the caller resolved once per request, before any resolver
// runs. A zero value is the anonymous public caller.
type Identity struct {
	Authenticated bool
	Uid           uint
	Email         string
	Username      string
	IsSuperAdmin  bool
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom never fails; an absent identity is the public caller.
func IdentityFrom(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return identity
	}
	return &Identity{}
}
