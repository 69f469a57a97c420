package route

import (
	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/pkg/middleware"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas de cadastro e acesso
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/forgot-password", authController.ForgotPassword)
		authRouter.POST("/reset-password", authController.ResetPassword)

		// Rota para obter informações do usuário logado (requer autenticação)
		authRouter.GET("/me", middleware.AuthMiddleware(), authController.Me)
	}
}
