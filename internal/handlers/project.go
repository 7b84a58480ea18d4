package handlers

import (
	"fmt"
	"net/http"
	"time"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createProjectRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	ClientName          string `json:"client_name"`
	DesignEstimatedDays int    `json:"design_estimated_days"`
}

func CreateProject(c *gin.Context) {
	user := currentUser(c)

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name is required"})
		return
	}
	if req.DesignEstimatedDays <= 0 {
		respondError(c, pipeline.Validation("design estimated days must be positive"))
		return
	}

	now := time.Now().UTC()
	end := pipeline.AddBusinessDays(now, req.DesignEstimatedDays)

	// projects enter the pipeline directly in design
	project := models.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		CreatedBy:   user.UserID,
		Status:      models.StatusDesign,
		DesignStage: models.StageRecord{
			Status:        models.StageInProgress,
			EstimatedDays: req.DesignEstimatedDays,
			StartDate:     &now,
			EndDate:       &end,
			EstimatedBy:   user.UserID,
			EstimatedAt:   &now,
		},
	}

	if err := database.DB.Create(&project).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "project", project.ProjectID, "create", "created project "+project.Name)
	c.JSON(http.StatusOK, project)
}

// projectListItem carries a project plus its creator's display name, so
// listings do not force a lookup per row on the client.
type projectListItem struct {
	models.Project
	CreatedByName string `json:"created_by_name"`
}

func ListProjects(c *gin.Context) {
	user := currentUser(c)

	q := database.DB.Model(&models.Project{})
	// designers see only their own projects; everyone else sees all
	if user.Role == models.RoleDesigner {
		q = q.Where("created_by = ?", user.UserID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}

	creators := make([]string, 0, len(projects))
	for i := range projects {
		creators = append(creators, projects[i].CreatedBy)
	}
	names, err := userNames(creators)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]projectListItem, 0, len(projects))
	for i := range projects {
		items = append(items, projectListItem{
			Project:       projects[i],
			CreatedByName: names[projects[i].CreatedBy],
		})
	}
	c.JSON(http.StatusOK, items)
}

func GetProject(c *gin.Context) {
	project, err := loadProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func AdvanceStage(c *gin.Context) {
	user := currentUser(c)

	project, err := loadProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	tr, err := engine.AdvanceStage(project, &user, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.SaveProject(project); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "project", project.ProjectID, "advance_stage",
		fmt.Sprintf("advanced from %s to %s", tr.From, tr.To))
	announceTransition(project, tr, 0, 0)

	c.JSON(http.StatusOK, project)
}

type estimateRequest struct {
	EstimatedDays int    `json:"estimated_days"`
	Notes         string `json:"notes"`
}

// SetMyEstimate lets the responsible user of the active stage set its
// duration.
func SetMyEstimate(c *gin.Context) {
	user := currentUser(c)

	project, err := loadProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}

	if err := engine.SetEstimate(project, project.Status, req.EstimatedDays, req.Notes, &user, time.Now().UTC()); err != nil {
		respondError(c, err)
		return
	}
	if err := database.SaveProject(project); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "project", project.ProjectID, "estimate",
		fmt.Sprintf("estimated %s stage at %d days", project.Status, req.EstimatedDays))

	c.JSON(http.StatusOK, project)
}

func CompleteEarly(c *gin.Context) {
	user := currentUser(c)

	project, err := loadProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	done, err := engine.CompleteEarly(project, &user, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.SaveProject(project); err != nil {
		respondError(c, err)
		return
	}

	// reward ledger write; deliberately not transactional with the stage
	// write, a lost award is cosmetic only
	if done.StarsEarned > 0 {
		if err := database.DB.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			UpdateColumn("stars", gorm.Expr("stars + ?", done.StarsEarned)).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	database.CreateAuditLog(user.UserID, "project", project.ProjectID, "complete_early",
		fmt.Sprintf("closed %s stage %d days early, %d stars", done.From, done.DaysEarly, done.StarsEarned))
	announceTransition(project, &done.Transition, done.DaysEarly, done.StarsEarned)

	message := "stage completed"
	if done.IsEarly {
		message = fmt.Sprintf("congratulations, completed %d days early for %d stars", done.DaysEarly, done.StarsEarned)
	}
	c.JSON(http.StatusOK, gin.H{
		"project":      project,
		"stars_earned": done.StarsEarned,
		"days_early":   done.DaysEarly,
		"is_early":     done.IsEarly,
		"message":      message,
	})
}

func ConfirmMaterials(c *gin.Context) {
	user := currentUser(c)

	project, err := loadProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := engine.ConfirmMaterials(project, &user, time.Now().UTC()); err != nil {
		respondError(c, err)
		return
	}
	if err := database.SaveProject(project); err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "project", project.ProjectID, "confirm_materials", "materials confirmed for manufacturing")
	c.JSON(http.StatusOK, project)
}

func loadProject(projectID string) (*models.Project, error) {
	var project models.Project
	if err := database.DB.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// announceTransition notifies the users picking up the next stage, and the
// superadmins when a project finishes or a stage closes early.
func announceTransition(p *models.Project, tr *pipeline.Transition, daysEarly, stars int) {
	if tr.Completed {
		msg := fmt.Sprintf("project '%s' has been completed", p.Name)
		if daysEarly > 0 {
			msg = fmt.Sprintf("project '%s' has been completed %d days early, %d stars awarded", p.Name, daysEarly, stars)
		}
		notifier.NotifyRole(models.RoleSuperadmin, p.ProjectID, msg)
		return
	}

	if tr.NextRole != "" {
		msg := fmt.Sprintf("project '%s' advanced to the %s stage, please set your estimate", p.Name, tr.To)
		notifier.NotifyRole(tr.NextRole, p.ProjectID, msg)
	}
	if daysEarly > 0 {
		notifier.NotifyRole(models.RoleSuperadmin, p.ProjectID,
			fmt.Sprintf("the %s stage of project '%s' closed %d days early, %d stars awarded", tr.From, p.Name, daysEarly, stars))
	}
}
