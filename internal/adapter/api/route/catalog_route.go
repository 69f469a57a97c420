package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupCatalogRoutes configura as rotas para o catálogo de produtos e serviços
func SetupCatalogRoutes(router *gin.RouterGroup, catalogController *controller.CatalogController) {
	// Todas as rotas do catálogo requerem autenticação
	catalogRouter := router.Group("/finance/catalog")
	catalogRouter.Use(middleware.AuthMiddleware())
	{
		// Operações CRUD básicas
		catalogRouter.GET("", catalogController.List)
		catalogRouter.POST("", catalogController.Create)
		catalogRouter.PUT("/:id", catalogController.Update)
		catalogRouter.DELETE("/:id", catalogController.Delete)

		// Consulta por código de barras / QR code
		catalogRouter.GET("/qrcode/:code", catalogController.GetByQrCode)

		// Controle de estoque
		catalogRouter.POST("/:id/stock-adjust", catalogController.AdjustStock)
		catalogRouter.GET("/stock/low", catalogController.LowStock)
		catalogRouter.GET("/stock/movements", catalogController.Movements)
	}
}
