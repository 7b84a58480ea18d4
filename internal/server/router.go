package server

import (
	"net/http"
	"strings"
	"time"

	"robfu/internal/config"
	"robfu/internal/handlers"
	"robfu/internal/middleware"
	"robfu/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSOrigins == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")

	// AUTH
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", handlers.Login)

	// avatars are public so <img> tags work without a token
	api.GET("/avatars/:filename", handlers.GetAvatar)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth(cfg.JWTSecret))

	auth.GET("/auth/me", handlers.Me)
	auth.PUT("/auth/me", handlers.UpdateMe)
	auth.POST("/auth/me/avatar", handlers.UploadAvatar)

	// USERS
	auth.GET("/users", handlers.GetAllUsers)
	auth.PUT("/users/:id/active",
		middleware.RequireRole(models.RoleSuperadmin),
		handlers.SetUserActive,
	)

	// PROJECTS
	auth.POST("/projects",
		middleware.RequireRole(models.RoleDesigner),
		handlers.CreateProject,
	)
	auth.GET("/projects", handlers.ListProjects)
	auth.GET("/projects/:id", handlers.GetProject)
	auth.PUT("/projects/:id/estimate", handlers.SetMyEstimate)
	auth.PUT("/projects/:id/advance", handlers.AdvanceStage)
	auth.PUT("/projects/:id/complete-early", handlers.CompleteEarly)
	auth.PUT("/projects/:id/confirm-materials", handlers.ConfirmMaterials)

	// documents
	auth.POST("/documents/upload", handlers.UploadDocument)
	auth.GET("/documents/:id/download", handlers.DownloadDocument)
	auth.GET("/projects/:id/documents", handlers.ListProjectDocuments)

	// observations
	auth.POST("/observations", handlers.CreateObservation)
	auth.GET("/projects/:id/observations", handlers.ListProjectObservations)
	auth.GET("/observations/mentions", handlers.ListMyMentions)

	// PURCHASE ORDERS
	auth.POST("/purchase-orders",
		middleware.RequireRole(models.RolePurchasing),
		handlers.CreatePurchaseOrder,
	)
	auth.GET("/purchase-orders", handlers.ListPurchaseOrders)
	auth.PUT("/purchase-orders/:id/status",
		middleware.RequireRole(models.RolePurchasing),
		handlers.UpdatePurchaseOrderStatus,
	)

	// STUDIES
	auth.POST("/studies",
		middleware.RequireRole(models.RoleDesigner),
		handlers.CreateStudy,
	)
	auth.GET("/studies", handlers.ListStudies)
	auth.GET("/studies/:id", handlers.GetStudy)
	auth.PUT("/studies/:id/estimate/:stage", handlers.SetStudyEstimate)
	auth.PUT("/studies/:id/status", handlers.UpdateStudyStatus)
	auth.POST("/studies/:id/approve", handlers.ApproveStudy)
	auth.GET("/studies/:id/export", handlers.ExportStudyPDF)

	// NOTIFICATIONS
	auth.GET("/notifications", handlers.ListMyNotifications)
	auth.PUT("/notifications/:id/read", handlers.MarkNotificationRead)

	// DASHBOARD (superadmin only)
	auth.GET("/dashboard/kpis",
		middleware.RequireRole(models.RoleSuperadmin),
		handlers.GetDashboardKPIs,
	)
	auth.GET("/dashboard/projects-by-status",
		middleware.RequireRole(models.RoleSuperadmin),
		handlers.GetProjectsByStatus,
	)
	auth.GET("/gantt/data", handlers.GetGanttData)

	// AUDIT
	auth.GET("/audit",
		middleware.RequireRole(models.RoleSuperadmin),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
