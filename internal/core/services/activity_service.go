package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
)

// activityService is the append-only audit trail. RecordActivity is
// best-effort: a failed insert is logged and swallowed so the calling
// operation never fails on audit problems.
type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// RecordActivity appends one audit record.
// Implements portssvc.ActivitySvcFacade
func (s *activityService) RecordActivity(ctx context.Context, entityType, entityID, action, detail string, actorUserID string) {
	now := time.Now().UTC()
	activity := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		s.LogWarn(ctx, "Failed to record activity",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}

// ListActivities retrieves audit records for an entity, newest first.
// Implements portssvc.ActivitySvcFacade
func (s *activityService) ListActivities(ctx context.Context, entityType, entityID string, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}

	activities, err := s.activityRepo.ListActivitiesByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
