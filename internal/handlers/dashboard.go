package handlers

import (
	"fmt"
	"net/http"
	"time"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"
	"robfu/internal/report"

	"github.com/gin-gonic/gin"
)

// atRiskWindowDays: an active project whose current stage deadline is this
// close counts as at risk rather than on time.
const atRiskWindowDays = 2

const (
	healthDelayed = "delayed"
	healthAtRisk  = "at_risk"
	healthOnTime  = "on_time"
)

// stageHealth classifies an active project by the deadline of its current
// stage. Projects whose stage has no deadline yet are unclassified.
func stageHealth(p *models.Project, now time.Time) (string, bool) {
	rec := p.Stage(p.Status)
	if rec == nil || rec.EndDate == nil {
		return "", false
	}
	switch {
	case now.After(*rec.EndDate):
		return healthDelayed, true
	case pipeline.WholeDaysUntil(now, *rec.EndDate) <= atRiskWindowDays:
		return healthAtRisk, true
	default:
		return healthOnTime, true
	}
}

type dashboardKPIs struct {
	TotalProjects     int            `json:"total_projects"`
	ActiveProjects    int            `json:"active_projects"`
	CompletedProjects int            `json:"completed_projects"`
	Delayed           int            `json:"delayed"`
	AtRisk            int            `json:"at_risk"`
	OnTime            int            `json:"on_time"`
	DelaysByStage     map[string]int `json:"delays_by_stage"`
}

// GetDashboardKPIs counts projects per status and buckets the active ones
// by stage deadline: past due is delayed, due within the risk window is at
// risk, anything further out is on time. Stages without an estimate yet
// fall outside the three buckets.
func GetDashboardKPIs(c *gin.Context) {
	var projects []models.Project
	if err := database.DB.Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}

	kpis := dashboardKPIs{DelaysByStage: map[string]int{}}
	now := time.Now()

	for i := range projects {
		p := &projects[i]
		kpis.TotalProjects++

		if p.Status == models.StatusCompleted {
			kpis.CompletedProjects++
			continue
		}
		if !pipeline.IsPipelineStage(p.Status) {
			continue
		}
		kpis.ActiveProjects++

		health, ok := stageHealth(p, now)
		if !ok {
			continue
		}
		switch health {
		case healthDelayed:
			kpis.Delayed++
			kpis.DelaysByStage[string(p.Status)]++
		case healthAtRisk:
			kpis.AtRisk++
		default:
			kpis.OnTime++
		}
	}

	c.JSON(http.StatusOK, kpis)
}

// GetProjectsByStatus is the dashboard drill-down: the projects behind one
// KPI bucket (total, delayed, at_risk or on_time) plus their Gantt tasks.
func GetProjectsByStatus(c *gin.Context) {
	bucket := c.DefaultQuery("status", "total")
	switch bucket {
	case "total", healthDelayed, healthAtRisk, healthOnTime:
	default:
		respondError(c, pipeline.Validation(fmt.Sprintf("unknown status bucket %q", bucket)))
		return
	}

	var projects []models.Project
	if err := database.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	matched := make([]models.Project, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if bucket == "total" {
			matched = append(matched, *p)
			continue
		}
		if !pipeline.IsPipelineStage(p.Status) {
			continue
		}
		if health, ok := stageHealth(p, now); ok && health == bucket {
			matched = append(matched, *p)
		}
	}

	tasks, _ := report.ProjectGanttTasks(matched)
	c.JSON(http.StatusOK, gin.H{"projects": matched, "gantt_tasks": tasks})
}

// GetGanttData flattens projects into per-stage tasks for the frontend
// timeline. Designers only see their own projects.
func GetGanttData(c *gin.Context) {
	user := currentUser(c)

	query := database.DB.Order("created_at")
	if user.Role == models.RoleDesigner {
		query = query.Where("created_by = ?", user.UserID)
	}
	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}

	tasks, links := report.ProjectGanttTasks(projects)
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "links": links})
}
