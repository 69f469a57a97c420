package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupQuoteRoutes configura as rotas para o módulo de orçamentos
func SetupQuoteRoutes(router *gin.RouterGroup, quoteController *controller.QuoteController) {
	// Todas as rotas de orçamentos requerem autenticação
	quoteRouter := router.Group("/finance/quotes")
	quoteRouter.Use(middleware.AuthMiddleware())
	{
		quoteRouter.GET("", quoteController.List)
		quoteRouter.POST("", quoteController.Create)
		quoteRouter.PUT("/:id", quoteController.Update)
		quoteRouter.DELETE("/:id", quoteController.Delete)

		// Operações adicionais
		quoteRouter.GET("/:id/pdf", quoteController.PDF)
		quoteRouter.GET("/:id/history", quoteController.History)
	}
}
