package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"robfu/internal/database"
	"robfu/internal/models"
	"robfu/internal/pipeline"

	"github.com/gin-gonic/gin"
)

var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

func GetAllUsers(c *gin.Context) {
	var users []models.User
	query := database.DB.Order("name")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateMeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UpdateMe(c *gin.Context) {
	user := currentUser(c)

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			var count int64
			database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
			if count > 0 {
				respondError(c, pipeline.Validation("email already in use"))
				return
			}
			user.Email = email
		}
	}

	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

// SetUserActive enables or disables an account. Disabled users keep their
// history but can no longer authenticate.
func SetUserActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "active field is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", c.Param("id")).First(&user).Error; err != nil {
		respondError(c, pipeline.NotFound("user not found"))
		return
	}

	user.Active = *req.Active
	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	admin := currentUser(c)
	action := "deactivate"
	if user.Active {
		action = "activate"
	}
	database.CreateAuditLog(admin.UserID, "user", user.UserID, action, user.Email)

	c.JSON(http.StatusOK, user)
}

func UploadAvatar(c *gin.Context) {
	user := currentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !avatarExtensions[ext] {
		respondError(c, pipeline.Validation("avatar must be an image (png, jpg, jpeg, webp)"))
		return
	}

	if err := os.MkdirAll(cfg.AvatarDir, 0o755); err != nil {
		respondError(c, err)
		return
	}
	filename := user.UserID + ext
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.AvatarDir, filename)); err != nil {
		respondError(c, err)
		return
	}

	user.AvatarURL = "/api/avatars/" + filename
	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": user.AvatarURL})
}

// GetAvatar serves a stored avatar. Public so that <img> tags work without
// an Authorization header.
func GetAvatar(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(cfg.AvatarDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "avatar not found"})
		return
	}
	c.File(path)
}
