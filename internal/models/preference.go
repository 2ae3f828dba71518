package models

// Preference is a row of the preference table.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt int64
}
