package models

// ActivityLog mirrors the activity_logs table.
type ActivityLog struct {
	ActivityID string `json:"activityID"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityID"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
	AuditFields
}
