package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupSaleRoutes configura as rotas para o módulo de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	// Todas as rotas de vendas requerem autenticação
	saleRouter := router.Group("/finance/sales")
	saleRouter.Use(middleware.AuthMiddleware())
	{
		// Operações CRUD básicas
		saleRouter.GET("", saleController.List)
		saleRouter.POST("", saleController.Create)
		saleRouter.GET("/stats", saleController.Stats)
		saleRouter.GET("/:id", saleController.Get)
		saleRouter.PUT("/:id", saleController.Update)
		saleRouter.DELETE("/:id", saleController.Delete)

		// Operações adicionais
		saleRouter.PATCH("/:id/status", saleController.UpdateStatus)
		saleRouter.GET("/:id/pdf", saleController.PDF)
		saleRouter.GET("/:id/history", saleController.History)
	}
}
