package batch

import (
	"net/http"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	service *BatchService
}

func NewBatchHandler(service *BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

func (h *BatchHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.POST("/assets/bulk", h.CreateBulkAssets)
	}
}

// CreateBulkAssets expands a template form into per-item requests and runs
// them as one batch. Partial success still returns 200 with the per-row
// errors in the body.
func (h *BatchHandler) CreateBulkAssets(c *gin.Context) {
	var req models.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	performedBy, err := security.GetUsernameFromToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user", "details": err.Error()})
		return
	}

	result, err := h.service.CreateFromTemplate(performedBy, req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to create assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
