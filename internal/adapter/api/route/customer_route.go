package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupCustomerRoutes configura as rotas para o módulo de clientes
func SetupCustomerRoutes(router *gin.RouterGroup, customerController *controller.CustomerController) {
	// Todas as rotas de clientes requerem autenticação
	customerRouter := router.Group("/finance/customers")
	customerRouter.Use(middleware.AuthMiddleware())
	{
		customerRouter.GET("", customerController.List)
		customerRouter.POST("", customerController.Create)
		customerRouter.PUT("/:id", customerController.Update)
		customerRouter.DELETE("/:id", customerController.Delete)
	}
}
