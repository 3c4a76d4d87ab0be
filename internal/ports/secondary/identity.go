package secondary

import "context"

// IdentityResolver maps an opaque bearer token to the stable external UID of
// the user it was issued to. Implementations return ErrNotFound for tokens
// that do not resolve to a known identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (externalUID string, err error)
}
