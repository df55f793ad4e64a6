package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mover"
)

// MoverRepository reads mover profiles. Profiles are owned by the
// user-management collaborator and consumed read-only here, so there are no
// write methods.
type MoverRepository interface {
	// Get retrieves a mover profile by identifier.
	Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error)
}
