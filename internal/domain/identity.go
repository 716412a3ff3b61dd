package domain

import "context"

// Identity is the authenticated caller, as asserted by a verified token.
type Identity struct {
	UserID    int64
	Username  string
	Email     string
	FirstName string
	LastName  string
}

func (i Identity) User() User {
	return User{
		ID:        i.UserID,
		Username:  i.Username,
		Email:     i.Email,
		FirstName: i.FirstName,
		LastName:  i.LastName,
	}
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID <= 0 {
		return Identity{}, false
	}
	return id, true
}
