package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"
	"robfu/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowed document extensions; materials lists must additionally be Excel
var documentExtensions = map[string]bool{
	".pdf":  true,
	".xls":  true,
	".xlsx": true,
}

func UploadDocument(c *gin.Context) {
	user := currentUser(c)

	projectID := c.PostForm("project_id")
	stage := c.PostForm("stage")
	docType := models.DocumentType(c.DefaultPostForm("document_type", string(models.DocGeneric)))
	storageType := models.StorageType(c.DefaultPostForm("storage_type", string(models.StorageLocal)))

	switch docType {
	case models.DocGeneric, models.DocMaterialsList, models.DocCutsList, models.DocPurchaseOrder:
	default:
		respondError(c, pipeline.Validation(fmt.Sprintf("unknown document type %q", docType)))
		return
	}

	if _, err := loadProject(projectID); err != nil {
		respondError(c, err)
		return
	}

	// write-time cap, checked before touching storage
	var count int64
	if err := database.DB.Model(&models.Document{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	if count >= pipeline.DocumentCap {
		respondError(c, pipeline.Validation(fmt.Sprintf("a project can hold at most %d documents", pipeline.DocumentCap)))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "a file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !documentExtensions[ext] {
		respondError(c, pipeline.Validation("documents must be PDF or Excel files (.pdf, .xls, .xlsx)"))
		return
	}
	if docType == models.DocMaterialsList && ext == ".pdf" {
		respondError(c, pipeline.Validation("the materials list must be an Excel file (.xls or .xlsx)"))
		return
	}

	backend, err := pickStorage(storageType)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	locator, err := backend.Store(projectID, header.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}

	doc := models.Document{
		DocumentID:   uuid.NewString(),
		ProjectID:    projectID,
		Filename:     header.Filename,
		FileType:     header.Header.Get("Content-Type"),
		DocumentType: docType,
		StorageType:  backend.Type(),
		Locator:      locator,
		Stage:        stage,
		UploadedBy:   user.UserID,
	}
	if err := database.DB.Create(&doc).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "document", doc.DocumentID, "upload",
		fmt.Sprintf("uploaded %s (%s) to project %s", doc.Filename, doc.DocumentType, projectID))

	c.JSON(http.StatusOK, doc)
}

func DownloadDocument(c *gin.Context) {
	var doc models.Document
	if err := database.DB.Where("document_id = ?", c.Param("id")).First(&doc).Error; err != nil {
		respondError(c, err)
		return
	}

	backend, err := pickStorage(doc.StorageType)
	if err != nil {
		respondError(c, err)
		return
	}

	r, err := backend.Open(doc.Locator)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "file not found in storage"})
		return
	}
	defer r.Close()

	contentType := doc.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.DataFromReader(http.StatusOK, -1, contentType, r, nil)
}

func ListProjectDocuments(c *gin.Context) {
	var docs []models.Document
	if err := database.DB.
		Where("project_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func pickStorage(t models.StorageType) (storage.Storage, error) {
	switch t {
	case models.StorageLocal:
		return local, nil
	case models.StorageDrive:
		if drive == nil {
			return nil, pipeline.Validation("drive storage is not configured")
		}
		return drive, nil
	default:
		return nil, pipeline.Validation(fmt.Sprintf("unknown storage type %q", t))
	}
}
