package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string
type StageStatus string

const (
	StatusDraft         ProjectStatus = "draft"
	StatusDesign        ProjectStatus = "design"
	StatusValidation    ProjectStatus = "validation"
	StatusPurchasing    ProjectStatus = "purchasing"
	StatusWarehouse     ProjectStatus = "warehouse"
	StatusManufacturing ProjectStatus = "manufacturing"
	StatusCompleted     ProjectStatus = "completed"

	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
)

// StageRecord is the per-stage bookkeeping block. Projects embed one per
// pipeline stage so a pipeline mutation is a single-row write.
type StageRecord struct {
	Status        StageStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	EstimatedDays int         `gorm:"not null;default:0" json:"estimated_days"`
	ActualDays    int         `gorm:"not null;default:0" json:"actual_days"`
	StartDate     *time.Time  `json:"start_date"`
	EndDate       *time.Time  `json:"end_date"`
	Notes         string      `gorm:"type:text" json:"notes"`
	EstimatedBy   string      `gorm:"size:36" json:"estimated_by"`
	EstimatedAt   *time.Time  `json:"estimated_at"`

	CompletedEarly bool `gorm:"not null;default:false" json:"completed_early"`
	DaysEarly      int  `gorm:"not null;default:0" json:"days_early"`

	// warehouse stage only
	MaterialsConfirmed   bool       `gorm:"not null;default:false" json:"materials_confirmed"`
	MaterialsConfirmedAt *time.Time `json:"materials_confirmed_at"`
	MaterialsConfirmedBy string     `gorm:"size:36" json:"materials_confirmed_by"`
}

type Project struct {
	gorm.Model
	ProjectID   string        `gorm:"size:36;uniqueIndex;not null" json:"project_id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	ClientName  string        `gorm:"size:255" json:"client_name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedBy   string        `gorm:"size:36;not null" json:"created_by"`

	DesignStage        StageRecord `gorm:"embedded;embeddedPrefix:design_" json:"design_stage"`
	ValidationStage    StageRecord `gorm:"embedded;embeddedPrefix:validation_" json:"validation_stage"`
	PurchasingStage    StageRecord `gorm:"embedded;embeddedPrefix:purchasing_" json:"purchasing_stage"`
	WarehouseStage     StageRecord `gorm:"embedded;embeddedPrefix:warehouse_" json:"warehouse_stage"`
	ManufacturingStage StageRecord `gorm:"embedded;embeddedPrefix:manufacturing_" json:"manufacturing_stage"`

	CompletedAt *time.Time `json:"completed_at"`

	// optimistic lock, checked-and-incremented on every save
	Version int `gorm:"not null;default:0" json:"version"`
}

// Stage returns the record for the given pipeline stage status, or nil for
// draft/completed.
func (p *Project) Stage(s ProjectStatus) *StageRecord {
	switch s {
	case StatusDesign:
		return &p.DesignStage
	case StatusValidation:
		return &p.ValidationStage
	case StatusPurchasing:
		return &p.PurchasingStage
	case StatusWarehouse:
		return &p.WarehouseStage
	case StatusManufacturing:
		return &p.ManufacturingStage
	}
	return nil
}
