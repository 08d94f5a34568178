package pgsql

import (
	"context"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activityColumns = `activity_id, entity_type, entity_id, action, detail, created_at, created_by, last_updated_at, last_updated_by`

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for the audit log.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

// SaveActivity appends one audit record.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		activity.ActivityID,
		activity.EntityType,
		activity.EntityID,
		activity.Action,
		activity.Detail,
		activity.CreatedAt,
		activity.CreatedBy,
		activity.LastUpdatedAt,
		activity.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert activity "+activity.ActivityID, err)
	}
	return nil
}

// ListActivitiesByEntity retrieves audit records for one entity, newest first.
func (r *PgxActivityRepository) ListActivitiesByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.ActivityLog, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activity_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activities for "+entityType+" "+entityID, err)
	}
	defer rows.Close()

	activities := []domain.ActivityLog{}
	for rows.Next() {
		var a domain.ActivityLog
		err := rows.Scan(
			&a.ActivityID,
			&a.EntityType,
			&a.EntityID,
			&a.Action,
			&a.Detail,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows", err)
	}
	return activities, nil
}
