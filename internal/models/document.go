package models

import "gorm.io/gorm"

type DocumentType string
type StorageType string

const (
	DocGeneric       DocumentType = "generic"
	DocMaterialsList DocumentType = "materials_list"
	DocCutsList      DocumentType = "cuts_list"
	DocPurchaseOrder DocumentType = "purchase_order"

	StorageLocal StorageType = "local"
	StorageDrive StorageType = "drive"
)

type Document struct {
	gorm.Model
	DocumentID   string       `gorm:"size:36;uniqueIndex;not null" json:"document_id"`
	ProjectID    string       `gorm:"size:36;index;not null" json:"project_id"`
	Filename     string       `gorm:"size:255;not null" json:"filename"`
	FileType     string       `gorm:"size:100" json:"file_type"` // mime type as uploaded
	DocumentType DocumentType `gorm:"type:varchar(30);not null;default:generic" json:"document_type"`
	StorageType  StorageType  `gorm:"type:varchar(10);not null" json:"storage_type"`
	Locator      string       `gorm:"size:512;not null" json:"-"` // path or bucket URL
	Stage        string       `gorm:"size:20" json:"stage"`
	UploadedBy   string       `gorm:"size:36;not null" json:"uploaded_by"`
}
