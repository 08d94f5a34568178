package repositories

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ActivityRepositoryFacade defines persistence for the append-only audit log.
type ActivityRepositoryFacade interface {
	// SaveActivity appends one audit record.
	SaveActivity(ctx context.Context, activity domain.ActivityLog) error

	// ListActivitiesByEntity retrieves audit records for one entity, newest first.
	ListActivitiesByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.ActivityLog, error)
}
