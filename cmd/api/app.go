package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gestaofacil/backend/internal/adapter/api/controller"
	"github.com/gestaofacil/backend/internal/adapter/api/route"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/infrastructure/database"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger

	authController         *controller.AuthController
	profileController      *controller.ProfileController
	customerController     *controller.CustomerController
	catalogController      *controller.CatalogController
	saleController         *controller.SaleController
	quoteController        *controller.QuoteController
	serviceOrderController *controller.ServiceOrderController
	entryController        *controller.EntryController
	summaryController      *controller.SummaryController
	configController       *controller.SystemConfigController
	nfeController          *controller.NfeController
	dashboardController    *controller.DashboardController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Valores monetários são serializados como números JSON
	decimal.MarshalJSONWithoutQuotes = true

	// Aplicar migrações pendentes
	if err := database.RunMigrations(); err != nil {
		return nil, err
	}

	// Configurar banco de dados
	db, err := database.NewPostgresPool(context.Background())
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	configRepo := repository.NewSystemConfigRepository(db)

	// Criar serviços
	audit := service.NewAuditService(auditRepo, log)
	mailer := service.NewMailerFromEnv(log)
	pdf := service.NewPDFService()

	// Criar controllers
	app := &App{
		db:     db,
		logger: log,

		authController:         controller.NewAuthController(userRepo, resetRepo, mailer, log),
		profileController:      controller.NewProfileController(userRepo, log),
		customerController:     controller.NewCustomerController(customerRepo, audit, log),
		catalogController:      controller.NewCatalogController(catalogRepo, movementRepo, audit, log),
		saleController:         controller.NewSaleController(saleRepo, catalogRepo, movementRepo, configRepo, audit, pdf, log),
		quoteController:        controller.NewQuoteController(quoteRepo, configRepo, audit, pdf, log),
		serviceOrderController: controller.NewServiceOrderController(orderRepo, configRepo, audit, pdf, mailer, log),
		entryController:        controller.NewEntryController(entryRepo, audit, log),
		summaryController:      controller.NewSummaryController(entryRepo, quoteRepo, customerRepo, catalogRepo, log),
		configController:       controller.NewSystemConfigController(configRepo, audit, log),
		nfeController:          controller.NewNfeController(catalogRepo, movementRepo, audit, log),
		dashboardController:    controller.NewDashboardController(orderRepo, quoteRepo, entryRepo, saleRepo, customerRepo, catalogRepo, audit, log),
	}

	app.router = app.setupRouter()

	return app, nil
}

// setupRouter configura o router, os middlewares globais e as rotas
func (a *App) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	// Configurar CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, a.authController)
	route.SetupProfileRoutes(api, a.profileController)
	route.SetupCustomerRoutes(api, a.customerController)
	route.SetupCatalogRoutes(api, a.catalogController)
	route.SetupSaleRoutes(api, a.saleController)
	route.SetupQuoteRoutes(api, a.quoteController)
	route.SetupServiceOrderRoutes(api, a.serviceOrderController)
	route.SetupEntryRoutes(api, a.entryController, a.summaryController)
	route.SetupSystemConfigRoutes(api, a.configController)
	route.SetupNfeRoutes(api, a.nfeController)
	route.SetupDashboardRoutes(api, a.dashboardController)

	return router
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
