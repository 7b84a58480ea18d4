package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"robfu/internal/config"
	"robfu/internal/database"
	"robfu/internal/middleware"
	"robfu/internal/models"
	"robfu/internal/notify"
	"robfu/internal/pipeline"
	"robfu/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// package-level collaborators, wired once at boot
var (
	cfg      *config.Config
	engine   *pipeline.Engine
	notifier *notify.Service
	local    storage.Storage
	drive    storage.Storage // nil when no bucket is configured
)

// Setup wires the handler package. Called from main before the router is
// built.
func Setup(c *config.Config) {
	cfg = c
	engine = pipeline.NewEngine(database.Artifacts{})
	notifier = notify.NewService(c.ResendAPIKey, c.SenderEmail)
	local = storage.NewLocal(c.UploadDir)

	if c.DriveBucket != "" {
		d, err := storage.NewDrive(context.Background(), c.DriveBucket)
		if err != nil {
			log.Printf("drive storage disabled: %v", err)
		} else {
			drive = d
		}
	}
}

// respondError maps pipeline error kinds onto HTTP statuses. Anything
// untyped is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pipeline.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, pipeline.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, pipeline.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	case errors.Is(err, pipeline.ErrInvalidState),
		errors.Is(err, pipeline.ErrMissingPrecondition),
		errors.Is(err, pipeline.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// currentUser returns the user placed by the auth middleware. Routes are
// registered behind RequireAuth, so absence is a programming error.
func currentUser(c *gin.Context) models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

// userNames resolves user IDs to display names in one query. Unknown IDs
// are simply absent from the map.
func userNames(ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var users []models.User
	if err := database.DB.Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Name
	}
	return names, nil
}
