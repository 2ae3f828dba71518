package domain

import "time"

// MoneyScale is the number of decimal places every persisted monetary amount carries.
const MoneyScale int32 = 2

// Inception is the period start of a shop's first settlement ("since inception").
var Inception = time.UnixMilli(0).UTC()

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
