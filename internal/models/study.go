package models

import (
	"time"

	"gorm.io/gorm"
)

type StudyStatus string

const (
	StudyDraft    StudyStatus = "draft"
	StudyInReview StudyStatus = "in_review"
	StudyApproved StudyStatus = "approved"
	StudyRejected StudyStatus = "rejected"
)

// StudyStageRecord holds a simulated stage estimate. Studies never execute
// real work, so there is no status or date bookkeeping per stage.
type StudyStageRecord struct {
	EstimatedDays int        `gorm:"not null;default:0" json:"estimated_days"`
	EstimatedBy   string     `gorm:"size:36" json:"estimated_by"`
	EstimatedAt   *time.Time `json:"estimated_at"`
	Notes         string     `gorm:"type:text" json:"notes"`
}

// Study is a pre-project simulation: same stage shape as Project, used to
// estimate total duration before real work begins. Approving a study
// converts it into a Project exactly once.
type Study struct {
	gorm.Model
	StudyID     string      `gorm:"size:36;uniqueIndex;not null" json:"study_id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	ClientName  string      `gorm:"size:255" json:"client_name"`
	Description string      `gorm:"type:text" json:"description"`
	Status      StudyStatus `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	CreatedBy   string      `gorm:"size:36;not null" json:"created_by"`

	DesignStage        StudyStageRecord `gorm:"embedded;embeddedPrefix:design_" json:"design_stage"`
	ValidationStage    StudyStageRecord `gorm:"embedded;embeddedPrefix:validation_" json:"validation_stage"`
	PurchasingStage    StudyStageRecord `gorm:"embedded;embeddedPrefix:purchasing_" json:"purchasing_stage"`
	WarehouseStage     StudyStageRecord `gorm:"embedded;embeddedPrefix:warehouse_" json:"warehouse_stage"`
	ManufacturingStage StudyStageRecord `gorm:"embedded;embeddedPrefix:manufacturing_" json:"manufacturing_stage"`

	TotalEstimatedDays int        `gorm:"not null;default:0" json:"total_estimated_days"`
	EstimatedStartDate *time.Time `json:"estimated_start_date"`
	EstimatedEndDate   *time.Time `json:"estimated_end_date"`
	StartedProjectID   string     `gorm:"size:36" json:"started_project_id"`

	Version int `gorm:"not null;default:0" json:"version"`
}

func (s *Study) Stage(st ProjectStatus) *StudyStageRecord {
	switch st {
	case StatusDesign:
		return &s.DesignStage
	case StatusValidation:
		return &s.ValidationStage
	case StatusPurchasing:
		return &s.PurchasingStage
	case StatusWarehouse:
		return &s.WarehouseStage
	case StatusManufacturing:
		return &s.ManufacturingStage
	}
	return nil
}
