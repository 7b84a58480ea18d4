package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID string `gorm:"size:36"`

	Entity   string `gorm:"size:50;not null"` // "project", "study", "purchase_order" etc.
	EntityID string `gorm:"size:36"`
	Action   string `gorm:"size:50;not null"` // "create", "advance_stage" etc.
	Details  string `gorm:"type:text"`
}
