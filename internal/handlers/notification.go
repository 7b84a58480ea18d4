package handlers

import (
	"net/http"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"

	"github.com/gin-gonic/gin"
)

func ListMyNotifications(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", user.UserID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the caller's notifications as read. The
// user scope prevents marking someone else's notifications.
func MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)

	result := database.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", c.Param("id"), user.UserID).
		Update("read", true)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, pipeline.NotFound("notification not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}
