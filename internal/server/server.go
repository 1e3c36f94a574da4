// Package server assembles the services, handlers and routes of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"khata/internal/config"
	_ "khata/internal/docs" // Import swagger docs
	"khata/internal/handlers"
	"khata/internal/middleware"
	"khata/internal/services"
)

// Services are the application services shared by every request.
type Services struct {
	Auth         services.AuthServicer
	Profiles     services.ProfileServicer
	Transactions services.TransactionServicer
	Receivers    services.ReceiverServicer
	Audit        services.AuditServicer
	Settings     services.SettingsServicer
	Dashboard    services.DashboardServicer
}

// NewServices wires the services over db.
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	audit := services.NewAuditService(db)
	receivers := services.NewReceiverService(db)
	transactions := services.NewTransactionService(db, audit, receivers)
	settings := services.NewSettingsService(db, cfg.DefaultRate)

	return &Services{
		Auth:         services.NewAuthService(db, cfg.JWTExpirationDur),
		Profiles:     services.NewProfileService(db),
		Transactions: transactions,
		Receivers:    receivers,
		Audit:        audit,
		Settings:     settings,
		Dashboard:    services.NewDashboardService(transactions, settings, receivers, cfg.Participants),
	}
}

// NewRouter builds the HTTP router. quoter may be nil, which disables the
// reference market rate.
func NewRouter(cfg *config.Config, svc *Services, quoter handlers.RateQuoter) *gin.Engine {
	resolver := middleware.NewSessionResolver(svc.Auth, svc.Profiles, cfg.ProfileFetchTimeout)

	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Profiles)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Settings, cfg.Participants)
	receiverHandler := handlers.NewReceiverHandler(svc.Receivers, cfg.Participants, cfg.Receivers())
	settingsHandler := handlers.NewSettingsHandler(svc.Settings, quoter)
	auditHandler := handlers.NewAuditHandler(svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigin))
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", middleware.MetricsAuth(cfg.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)

	v1.GET("/locales", handlers.NegotiateLocale)
	v1.GET("/locales/:lang", handlers.GetLocale)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(resolver))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/session", authHandler.GetSession)
	protected.GET("/profile", authHandler.GetProfile)

	protected.GET("/receivers", receiverHandler.ListReceivers)
	protected.GET("/participants", receiverHandler.ListParticipants)
	protected.GET("/logs", auditHandler.ListLogs)
	protected.GET("/logs/stream", auditHandler.StreamLogs)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/stream", transactionHandler.StreamTransactions)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("", middleware.RequireAdmin(), transactionHandler.CreateTransaction)
	transactions.PUT("/:id", middleware.RequireAdmin(), transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", middleware.RequireAdmin(), transactionHandler.DeleteTransaction)

	// Settings routes
	settings := protected.Group("/settings/currency")
	settings.GET("", settingsHandler.GetSettings)
	settings.GET("/stream", settingsHandler.StreamSettings)
	settings.PUT("", middleware.RequireAdmin(), settingsHandler.UpdateSettings)
	settings.GET("/reference", middleware.RequireAdmin(), settingsHandler.GetReferenceRate)

	protected.GET("/dashboard", middleware.RequireAdmin(), dashboardHandler.GetDashboard)

	router.NoRoute(middleware.RedirectUnknown(resolver))

	return router
}
