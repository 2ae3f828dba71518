package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

type SetPreferenceRequest struct {
	Value string `json:"value" binding:"max=4096"`
}

type PreferenceResponse struct {
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToPreferenceResponse(pref *domain.Preference) PreferenceResponse {
	return PreferenceResponse{Key: pref.Key, Value: pref.Value, LastUpdatedAt: pref.LastUpdatedAt}
}
