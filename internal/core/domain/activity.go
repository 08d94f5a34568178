package domain

// ActivityLog is an append-only audit record of a state-changing operation.
// Logging is best-effort: core correctness never depends on a log row landing.
type ActivityLog struct {
	ActivityID string `json:"activityID"` // Primary Key (UUID)
	EntityType string `json:"entityType"` // e.g. "invoice", "payment"
	EntityID   string `json:"entityID"`
	Action     string `json:"action"` // e.g. "created", "status_changed"
	Detail     string `json:"detail"` // Free-form JSON payload
	AuditFields
}
