package dto

import (
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
)

// ActivityResponse defines the data returned for an audit log record.
type ActivityResponse struct {
	ActivityID string    `json:"activityID"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// ListActivitiesParams defines query parameters for listing audit records.
type ListActivitiesParams struct {
	Limit int `form:"limit,default=50"`
}

// ToActivityResponses converts a slice of domain.ActivityLog to response DTOs
func ToActivityResponses(activities []domain.ActivityLog) []ActivityResponse {
	res := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		res[i] = ActivityResponse{
			ActivityID: a.ActivityID,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			Action:     a.Action,
			Detail:     a.Detail,
			CreatedAt:  a.CreatedAt,
			CreatedBy:  a.CreatedBy,
		}
	}
	return res
}
