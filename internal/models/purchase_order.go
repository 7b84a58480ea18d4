package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type POStatus string

const (
	POPending  POStatus = "pending"
	POSent     POStatus = "sent"
	POReceived POStatus = "received"
)

type PurchaseOrderItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type PurchaseOrder struct {
	gorm.Model
	POID      string                                 `gorm:"size:36;uniqueIndex;not null" json:"po_id"`
	ProjectID string                                 `gorm:"size:36;index;not null" json:"project_id"`
	Supplier  string                                 `gorm:"size:255;not null" json:"supplier"`
	Items     datatypes.JSONSlice[PurchaseOrderItem] `json:"items"`
	Total     float64                                `gorm:"not null" json:"total"` // Σ quantity × unit_price
	Status    POStatus                               `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Notes     string                                 `gorm:"type:text" json:"notes"`
	CreatedBy string                                 `gorm:"size:36;not null" json:"created_by"`
}
