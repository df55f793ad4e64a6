package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Role is the caller's side of the marketplace.
type Role string

const (
	RoleStudent Role = "student"
	RoleMover   Role = "mover"
)

// Identity is a resolved caller.
type Identity struct {
	ID   kernel.UUID
	Role Role
}

// CredentialVerifier resolves an opaque bearer credential to a caller
// identity. Credential issuance lives with the identity collaborator; this
// side only verifies.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
