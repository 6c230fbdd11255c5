package models

import (
	"time"
)

// Timestamps contains the creation and last-update columns. GORM assigns
// both on create and refreshes UpdatedAt on every update.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// NotApplicable is the stored placeholder for unset review dates and fee rates.
const NotApplicable = "N/A"

// stringOrDefault returns def when s is empty.
func stringOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
