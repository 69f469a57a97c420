package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupSystemConfigRoutes configura as rotas para as configurações do sistema
func SetupSystemConfigRoutes(router *gin.RouterGroup, configController *controller.SystemConfigController) {
	configRouter := router.Group("/settings")
	configRouter.Use(middleware.AuthMiddleware())
	{
		configRouter.GET("", configController.Get)
		configRouter.POST("", configController.Save)
	}
}
