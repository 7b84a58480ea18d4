package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	NotificationID string `gorm:"size:36;uniqueIndex;not null" json:"notification_id"`
	UserID         string `gorm:"size:36;index;not null" json:"user_id"`
	ProjectID      string `gorm:"size:36" json:"project_id"`
	Message        string `gorm:"type:text;not null" json:"message"`
	Read           bool   `gorm:"not null;default:false" json:"read"`
}
