package importer

import (
	"net/http"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	service *ImportService
}

func NewImportHandler(service *ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

func (h *ImportHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.POST("/assets/import", h.ImportAssets)
		protectedRoutes.POST("/assets/import/preview", h.PreviewImport)
	}
}

func (h *ImportHandler) PreviewImport(c *gin.Context) {
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	result, err := h.service.Preview(payload)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid import payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) ImportAssets(c *gin.Context) {
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	performedBy, err := security.GetUsernameFromToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user", "details": err.Error()})
		return
	}

	result, err := h.service.Commit(payload, performedBy)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid import payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// readPayload takes the raw body and decodes it per the charset query
// parameter, so legacy windows-1250/1251 exports can be uploaded as-is.
func (h *ImportHandler) readPayload(c *gin.Context) (string, bool) {
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Empty import payload"})
		return "", false
	}

	payload, err := DecodePayload(data, c.Query("charset"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unable to decode payload", "details": err.Error()})
		return "", false
	}

	return payload, true
}
