package identity

import (
	"context"
	"errors"

	"reqwise/pkg/auth"
	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for the authenticated user.
	Key ContextKey = "identity"
)

// ErrUnauthenticated covers every way a bearer token can fail to produce an
// account: missing, malformed, forged, expired, or pointing at an account
// that no longer exists. Callers get no finer detail.
var ErrUnauthenticated = errors.New("not authenticated")

// Resolver recovers the bearer's account record from a token.
type Resolver struct {
	codec *auth.Codec
	users store.UsersStore
}

// NewResolver creates a Resolver over the given token codec and users store.
func NewResolver(codec *auth.Codec, users store.UsersStore) *Resolver {
	return &Resolver{codec: codec, users: users}
}

// Resolve verifies a token and looks up the account it names. A valid token
// whose subject no longer has an account resolves to ErrUnauthenticated: a
// deleted account must not keep authenticating on an old token.
func (r *Resolver) Resolve(token string) (*model.User, error) {
	claims, err := r.codec.Decode(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := r.users.GetUserByEmail(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return ActiveUser(user)
}

// ActiveUser is a hook for future activation-status checks (suspension,
// email verification, and the like). Today it is the identity function.
func ActiveUser(user *model.User) (*model.User, error) {
	return user, nil
}

// Get retrieves the authenticated user from context.
func Get(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(Key).(*model.User)
	return user, ok
}

// Set stores the authenticated user in context.
func Set(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, Key, user)
}
