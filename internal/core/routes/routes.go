package routes

import (
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/core/container"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/middleware"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
	container.AssetHandler.RegisterRoutes(router)
	container.BatchHandler.RegisterRoutes(router)
	container.ImportHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	container.UserHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
	router.GET("/metrics", middleware.MetricsHandler())
}
