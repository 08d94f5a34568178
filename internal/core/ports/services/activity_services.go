package services

import (
	"context"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ActivitySvcFacade defines the audit-trail operations.
type ActivitySvcFacade interface {
	// RecordActivity appends an audit record. Best-effort: implementations log
	// failures and return nothing, so callers never fail on audit problems.
	RecordActivity(ctx context.Context, entityType, entityID, action, detail string, actorUserID string)

	// ListActivities retrieves audit records for an entity, newest first.
	ListActivities(ctx context.Context, entityType, entityID string, limit int) ([]domain.ActivityLog, error)
}
