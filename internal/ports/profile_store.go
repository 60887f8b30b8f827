package ports

import (
	"context"

	"github.com/redzonehq/redzone/internal/domain"
)

type ProfileStore interface {
	// Get returns domain.ErrProfileNotFound for a user with no profile yet.
	Get(ctx context.Context, userID domain.UserID) (domain.Profile, error)
	Put(ctx context.Context, profile domain.Profile) error
}
