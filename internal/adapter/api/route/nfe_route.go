package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupNfeRoutes configura as rotas para a importação de NFe
func SetupNfeRoutes(router *gin.RouterGroup, nfeController *controller.NfeController) {
	nfeRouter := router.Group("/finance/nfe-import")
	nfeRouter.Use(middleware.AuthMiddleware())
	{
		nfeRouter.POST("/upload", nfeController.Upload)
	}
}
