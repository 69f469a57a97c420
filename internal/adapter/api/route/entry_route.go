package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupEntryRoutes configura as rotas para os lançamentos financeiros
func SetupEntryRoutes(router *gin.RouterGroup, entryController *controller.EntryController, summaryController *controller.SummaryController) {
	// Todas as rotas financeiras requerem autenticação
	entryRouter := router.Group("/finance/entries")
	entryRouter.Use(middleware.AuthMiddleware())
	{
		entryRouter.GET("", entryController.List)
		entryRouter.POST("", entryController.Create)
		entryRouter.PUT("/:id", entryController.Update)
		entryRouter.DELETE("/:id", entryController.Delete)
	}

	// Resumo financeiro mensal
	router.GET("/finance/summary", middleware.AuthMiddleware(), summaryController.Get)
}
