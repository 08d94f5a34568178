package domain

// User represents a member of the firm (attorney, paralegal, billing staff).
// Only what the billing core needs: identity for audit trails and credentials
// for the API surface.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
