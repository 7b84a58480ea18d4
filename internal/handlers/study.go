package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"
	"robfu/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createStudyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ClientName  string `json:"client_name"`
}

func CreateStudy(c *gin.Context) {
	user := currentUser(c)

	var req createStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name is required"})
		return
	}

	study := models.Study{
		StudyID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		CreatedBy:   user.UserID,
		Status:      models.StudyDraft,
	}
	if err := database.DB.Create(&study).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "study", study.StudyID, "create", "created study "+study.Name)
	c.JSON(http.StatusOK, study)
}

type studyListItem struct {
	models.Study
	CreatedByName string `json:"created_by_name"`
}

// ListStudies returns every study: all roles collaborate on estimates, so
// visibility is not scoped.
func ListStudies(c *gin.Context) {
	var studies []models.Study
	if err := database.DB.Order("created_at DESC").Find(&studies).Error; err != nil {
		respondError(c, err)
		return
	}

	creators := make([]string, 0, len(studies))
	for i := range studies {
		creators = append(creators, studies[i].CreatedBy)
	}
	names, err := userNames(creators)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]studyListItem, 0, len(studies))
	for i := range studies {
		items = append(items, studyListItem{
			Study:         studies[i],
			CreatedByName: names[studies[i].CreatedBy],
		})
	}
	c.JSON(http.StatusOK, items)
}

func GetStudy(c *gin.Context) {
	study, err := loadStudy(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, study)
}

func SetStudyEstimate(c *gin.Context) {
	user := currentUser(c)

	study, err := loadStudy(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}

	stage := models.ProjectStatus(c.Param("stage"))
	if err := engine.SetStudyEstimate(study, stage, req.EstimatedDays, req.Notes, &user, time.Now().UTC()); err != nil {
		respondError(c, err)
		return
	}
	if err := database.SaveStudy(study); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "study", study.StudyID, "estimate",
		fmt.Sprintf("estimated %s stage at %d days", stage, req.EstimatedDays))

	c.JSON(http.StatusOK, study)
}

type studyStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStudyStatus moves a study between draft, in_review and rejected.
// Approval has its own endpoint since it spawns a project.
func UpdateStudyStatus(c *gin.Context) {
	user := currentUser(c)

	study, err := loadStudy(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req studyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}

	target := models.StudyStatus(req.Status)
	switch target {
	case models.StudyDraft, models.StudyInReview, models.StudyRejected:
	default:
		respondError(c, pipeline.Validation(fmt.Sprintf("cannot set study status %q", req.Status)))
		return
	}

	if user.Role != models.RoleSuperadmin && user.UserID != study.CreatedBy {
		respondError(c, pipeline.PermissionDenied("only the creator or a superadmin may change a study's status"))
		return
	}
	if study.Status == models.StudyApproved || study.Status == models.StudyRejected {
		respondError(c, pipeline.InvalidState(fmt.Sprintf("study is %s and can no longer change status", study.Status)))
		return
	}

	study.Status = target
	if err := database.SaveStudy(study); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "study", study.StudyID, "status_change", "study moved to "+string(target))
	c.JSON(http.StatusOK, study)
}

// ApproveStudy converts a draft study into a live project. The study write
// and the project insert commit together.
func ApproveStudy(c *gin.Context) {
	user := currentUser(c)

	study, err := loadStudy(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := engine.ApproveStudy(study, &user, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		prev := study.Version
		study.Version = prev + 1
		res := tx.Model(&models.Study{}).
			Where("id = ? AND version = ?", study.ID, prev).
			Select("*").
			Omit("id", "created_at").
			Updates(study)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pipeline.Conflict("study was modified concurrently, reload and retry")
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "study", study.StudyID, "approve",
		"approved study, started project "+project.ProjectID)
	notifier.NotifyRole(models.RoleDesigner, project.ProjectID,
		fmt.Sprintf("study '%s' was approved, project started in design", study.Name))

	c.JSON(http.StatusOK, gin.H{
		"project_id": project.ProjectID,
		"message":    "study approved and project created",
	})
}

func ExportStudyPDF(c *gin.Context) {
	study, err := loadStudy(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := estimatorNames(study)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := report.ExportStudyPDF(study, names)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to export study"})
		return
	}

	filename := fmt.Sprintf("study_%s.pdf", strings.ReplaceAll(study.Name, " ", "_"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func loadStudy(studyID string) (*models.Study, error) {
	var study models.Study
	if err := database.DB.Where("study_id = ?", studyID).First(&study).Error; err != nil {
		return nil, err
	}
	return &study, nil
}

func estimatorNames(s *models.Study) (map[string]string, error) {
	ids := make([]string, 0, len(pipeline.StageOrder))
	for _, stage := range pipeline.StageOrder {
		if rec := s.Stage(stage); rec.EstimatedBy != "" {
			ids = append(ids, rec.EstimatedBy)
		}
	}
	return userNames(ids)
}
