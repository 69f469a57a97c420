package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupServiceOrderRoutes configura as rotas para o módulo de ordens de serviço
func SetupServiceOrderRoutes(router *gin.RouterGroup, orderController *controller.ServiceOrderController) {
	// Todas as rotas de ordens de serviço requerem autenticação
	orderRouter := router.Group("/finance/service-orders")
	orderRouter.Use(middleware.AuthMiddleware())
	{
		// Operações CRUD básicas
		orderRouter.GET("", orderController.List)
		orderRouter.POST("", orderController.Create)
		orderRouter.GET("/stats", orderController.Stats)
		orderRouter.GET("/:id", orderController.Get)
		orderRouter.PUT("/:id", orderController.Update)
		orderRouter.DELETE("/:id", orderController.Delete)

		// Operações adicionais
		orderRouter.PUT("/:id/status", orderController.UpdateStatus)
		orderRouter.GET("/:id/pdf", orderController.PDF)
		orderRouter.GET("/:id/history", orderController.History)
	}
}
