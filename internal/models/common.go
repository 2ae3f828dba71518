package models

// AuditFields mirrors domain.AuditFields in storage form (Unix milliseconds).
type AuditFields struct {
	CreatedAt     int64
	LastUpdatedAt int64
}
