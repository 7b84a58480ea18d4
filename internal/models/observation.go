package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Observation is an append-only comment on a project stage. Observations are
// never edited or deleted.
type Observation struct {
	gorm.Model
	ObservationID string                      `gorm:"size:36;uniqueIndex;not null" json:"observation_id"`
	ProjectID     string                      `gorm:"size:36;index;not null" json:"project_id"`
	Stage         string                      `gorm:"size:20" json:"stage"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	CreatedBy     string                      `gorm:"size:36;not null" json:"created_by"`
	CreatedByName string                      `gorm:"size:255" json:"created_by_name"`
	CreatedByRole UserRole                    `gorm:"type:varchar(30)" json:"created_by_role"`
	Recipients    datatypes.JSONSlice[string] `json:"recipients"` // mentioned user ids
}
