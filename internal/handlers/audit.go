package handlers

import (
	"net/http"
	"strconv"

	"robfu/internal/database"
	"robfu/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns the newest audit entries, optionally filtered by
// entity and entity id.
func ListAuditLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 100
	}

	query := database.DB.Order("created_at DESC").Limit(limit)
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
