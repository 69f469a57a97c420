package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupDashboardRoutes configura as rotas para o painel de indicadores
func SetupDashboardRoutes(router *gin.RouterGroup, dashboardController *controller.DashboardController) {
	dashboardRouter := router.Group("/dashboard")
	dashboardRouter.Use(middleware.AuthMiddleware())
	{
		dashboardRouter.GET("/stats", dashboardController.Stats)
		dashboardRouter.GET("/sales-stats", dashboardController.SalesStats)
		dashboardRouter.GET("/sales-chart", dashboardController.SalesChart)
		dashboardRouter.GET("/top-products", dashboardController.TopProducts)
		dashboardRouter.GET("/recent-sales", dashboardController.RecentSales)
	}
}
