package ports

import (
	"context"

	"github.com/redzonehq/redzone/internal/domain"
)

type ZoneStore interface {
	// QueryAll returns the user's zones ordered by begin date ascending.
	QueryAll(ctx context.Context, userID domain.UserID) ([]domain.Zone, error)
	// Upsert replaces any stored zone with the same (user, begin date) key.
	Upsert(ctx context.Context, zone domain.Zone) error
}
