package port

import (
	"context"

	"github.com/google/uuid"
)

// StatsRepository provides aggregate counts not owned by a single repository.
type StatsRepository interface {
	CountEcoles(ctx context.Context) (int, error)
	CountAssignedMissions(ctx context.Context, intervenantID uuid.UUID) (int, error)
}
