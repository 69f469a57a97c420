package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupProfileRoutes configura as rotas para o perfil do usuário
func SetupProfileRoutes(router *gin.RouterGroup, profileController *controller.ProfileController) {
	profileRouter := router.Group("/profile")
	profileRouter.Use(middleware.AuthMiddleware())
	{
		profileRouter.GET("", profileController.Get)
		profileRouter.PUT("", profileController.Update)
	}
}
