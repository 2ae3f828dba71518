package domain

import "time"

// Preference is a local key-value setting such as the selected shop or a push token.
type Preference struct {
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
