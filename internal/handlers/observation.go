package handlers

import (
	"fmt"
	"net/http"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type createObservationRequest struct {
	ProjectID  string   `json:"project_id"`
	Stage      string   `json:"stage"`
	Content    string   `json:"content"`
	Recipients []string `json:"recipients"`
}

// CreateObservation appends a comment to a project stage and notifies the
// mentioned users. Observations are never edited or deleted.
func CreateObservation(c *gin.Context) {
	user := currentUser(c)

	var req createObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}
	if req.Content == "" {
		respondError(c, pipeline.Validation("observation content is required"))
		return
	}

	project, err := loadProject(req.ProjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	obs := models.Observation{
		ObservationID: uuid.NewString(),
		ProjectID:     req.ProjectID,
		Stage:         req.Stage,
		Content:       req.Content,
		CreatedBy:     user.UserID,
		CreatedByName: user.Name,
		CreatedByRole: user.Role,
		Recipients:    datatypes.NewJSONSlice(req.Recipients),
	}
	if err := database.DB.Create(&obs).Error; err != nil {
		respondError(c, err)
		return
	}

	notifier.Notify(req.Recipients, req.ProjectID,
		fmt.Sprintf("%s mentioned you in an observation on project '%s'", user.Name, project.Name))

	c.JSON(http.StatusOK, obs)
}

func ListProjectObservations(c *gin.Context) {
	var observations []models.Observation
	if err := database.DB.
		Where("project_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&observations).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, observations)
}

// ListMyMentions returns observations where the caller appears in the
// recipients list.
func ListMyMentions(c *gin.Context) {
	user := currentUser(c)

	var observations []models.Observation
	if err := database.DB.
		Where(datatypes.JSONArrayQuery("recipients").Contains(user.UserID)).
		Order("created_at DESC").
		Limit(100).
		Find(&observations).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, observations)
}
