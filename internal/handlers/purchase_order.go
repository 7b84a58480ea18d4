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

type createPORequest struct {
	ProjectID string                     `json:"project_id"`
	Supplier  string                     `json:"supplier"`
	Items     []models.PurchaseOrderItem `json:"items"`
	Notes     string                     `json:"notes"`
}

func CreatePurchaseOrder(c *gin.Context) {
	user := currentUser(c)

	var req createPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}
	if req.Supplier == "" || len(req.Items) == 0 {
		respondError(c, pipeline.Validation("a supplier and at least one item are required"))
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			respondError(c, pipeline.Validation("item quantities must be positive and prices non-negative"))
			return
		}
	}

	if _, err := loadProject(req.ProjectID); err != nil {
		respondError(c, err)
		return
	}

	total := 0.0
	for _, item := range req.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}

	po := models.PurchaseOrder{
		POID:      uuid.NewString(),
		ProjectID: req.ProjectID,
		Supplier:  req.Supplier,
		Items:     datatypes.NewJSONSlice(req.Items),
		Total:     total,
		Status:    models.POPending,
		Notes:     req.Notes,
		CreatedBy: user.UserID,
	}
	if err := database.DB.Create(&po).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "purchase_order", po.POID, "create",
		fmt.Sprintf("created purchase order for %s, total %.2f", po.Supplier, po.Total))

	c.JSON(http.StatusOK, po)
}

func ListPurchaseOrders(c *gin.Context) {
	q := database.DB.Model(&models.PurchaseOrder{})
	if projectID := c.Query("project_id"); projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}

	var orders []models.PurchaseOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type poStatusRequest struct {
	Status string `json:"status"`
}

func UpdatePurchaseOrderStatus(c *gin.Context) {
	user := currentUser(c)

	var req poStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed request body"})
		return
	}

	status := models.POStatus(req.Status)
	switch status {
	case models.POPending, models.POSent, models.POReceived:
	default:
		respondError(c, pipeline.Validation(fmt.Sprintf("unknown purchase order status %q", req.Status)))
		return
	}

	var po models.PurchaseOrder
	if err := database.DB.Where("po_id = ?", c.Param("id")).First(&po).Error; err != nil {
		respondError(c, err)
		return
	}

	po.Status = status
	if err := database.DB.Save(&po).Error; err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(user.UserID, "purchase_order", po.POID, "status_change", "purchase order moved to "+string(status))
	c.JSON(http.StatusOK, po)
}
