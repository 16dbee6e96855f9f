package assets

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	auditLogRepo "github.com/Djoppie/Djoppie-Inventory-sub000/internal/auditlog"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/repository"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	r          *AssetsRepository
	service    *AssetService
	repository *repository.Repository
	auditLog   *auditLogRepo.AuditLogRepository
}

func NewAssetHandler(r *repository.Repository, ar *AssetsRepository, service *AssetService, auditLog *auditLogRepo.AuditLogRepository) *AssetHandler {
	return &AssetHandler{
		r:          ar,
		service:    service,
		repository: r,
		auditLog:   auditLog,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	// Code lookup stays public for label scanners on the floor.
	router.GET("/assets/code/:code", h.GetAssetByCode)

	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets", h.GetAssets)
		protectedRoutes.GET("/assets/:id", h.GetAsset)
		protectedRoutes.GET("/assets/:id/log", h.GetAssetLog)
		protectedRoutes.POST("/assets", h.CreateAsset)
		protectedRoutes.GET("/assets/categories", h.GetCategories)
		protectedRoutes.POST("/assets/categories", security.Authorize("admin"), h.CreateCategory)
		protectedRoutes.DELETE("/assets/categories/:id", security.Authorize("admin"), h.RemoveCategory)
	}
}

func (h *AssetHandler) GetAssetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind asset code"})
		return
	}

	asset, err := h.r.FindAssetByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to locate asset with given code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID", "details": err.Error()})
		return
	}

	asset, err := h.r.GetAsset(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to locate asset", "code": "ASSET_NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssetLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID", "details": err.Error()})
		return
	}

	entries, err := h.auditLog.GetResourceLog(id, "asset")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	conditions := repository.NewQueryBuilder()
	for _, key := range []string{"status", "department", "location", "category_name"} {
		if value := c.Query(key); value != "" {
			conditions.AddCondition(key, value)
		}
	}
	if dummy := c.Query("is_dummy"); dummy != "" {
		conditions.AddCondition("is_dummy", dummy == "true")
	}

	assets, err := h.r.GetAssetsBy(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	performedBy, err := security.GetUsernameFromToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user", "details": err.Error()})
		return
	}

	asset, err := h.service.CreateAsset(performedBy, req)
	if err != nil {
		switch err.(type) {
		case *custom_error.DuplicateSerialError, *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Serial number already registered"})
		case *custom_error.UnknownCategoryError:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "details": err.Error()})
		case *custom_error.InvalidPrefixError:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid code prefix", "details": err.Error()})
		case *custom_error.RangeExhaustedError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Code range exhausted", "details": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetCategories(c *gin.Context) {
	categories, err := h.repository.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *AssetHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.repository.PersistCategory(category)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AssetHandler) RemoveCategory(c *gin.Context) {
	categoryID := c.Param("id")

	if id, err := strconv.Atoi(categoryID); err == nil {
		count, countErr := h.r.CountAssetsInCategory(id)
		if countErr == nil && count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Category still has assets assigned"})
			return
		}
	}

	if err := h.repository.DeleteCategoryByID(categoryID); err != nil {
		switch err.(type) {
		case *custom_error.ForeignKeyViolationError:
			c.JSON(http.StatusConflict, gin.H{"error": "Category is referenced by other resources"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
