package database

import (
	"robfu/internal/models"
	"robfu/internal/pipeline"
)

// SaveProject writes the full project row back, checking and incrementing
// the version column. A stale in-memory copy surfaces as a Conflict so
// concurrent stage advances cannot silently overwrite each other.
func SaveProject(p *models.Project) error {
	prev := p.Version
	p.Version = prev + 1

	res := DB.Model(&models.Project{}).
		Where("id = ? AND version = ?", p.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		p.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		p.Version = prev
		return pipeline.Conflict("project was modified concurrently, reload and retry")
	}
	return nil
}

// SaveStudy is the study counterpart of SaveProject.
func SaveStudy(s *models.Study) error {
	prev := s.Version
	s.Version = prev + 1

	res := DB.Model(&models.Study{}).
		Where("id = ? AND version = ?", s.ID, prev).
		Select("*").
		Omit("id", "created_at").
		Updates(s)
	if res.Error != nil {
		s.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.Version = prev
		return pipeline.Conflict("study was modified concurrently, reload and retry")
	}
	return nil
}

// Artifacts adapts the documents table to the pipeline's precondition
// checks.
type Artifacts struct{}

func (Artifacts) HasDocument(projectID string, docType models.DocumentType) (bool, error) {
	var count int64
	err := DB.Model(&models.Document{}).
		Where("project_id = ? AND document_type = ?", projectID, docType).
		Count(&count).Error
	return count > 0, err
}
