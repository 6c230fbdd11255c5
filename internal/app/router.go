package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vincowealth/internal/config"
	_ "vincowealth/internal/docs" // Import swagger docs
	"vincowealth/internal/handlers"
	"vincowealth/internal/middleware"
	"vincowealth/internal/services"
	"vincowealth/internal/validator"
)

// NewRouter wires services and handlers over store and mounts them under
// /api/v1 behind the loopback guard and session auth.
func NewRouter(cfg *config.Config, store services.Store, schema handlers.SchemaStatuser) *gin.Engine {
	validator.Register()

	// Initialize services
	auditService := services.NewAuditService(nil)
	clientService := services.NewClientService(store, auditService)
	tradeService := services.NewTradeService(store, auditService)
	letterService := services.NewSuitabilityLetterService(store, auditService)

	// Initialize handlers
	appHandler := handlers.NewAppHandler(schema)
	clientHandler := handlers.NewClientHandler(clientService, tradeService, letterService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	letterHandler := handlers.NewLetterHandler(letterService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LocalOnly())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	if !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionAuth(cfg.SessionSecret))

	v1.GET("/app/version", appHandler.Version)
	v1.GET("/app/greet", appHandler.Greet)
	v1.GET("/schema", appHandler.Schema)

	clients := v1.Group("/clients")
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.ListClients)
	clients.PUT("", clientHandler.ReplaceClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PATCH("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)
	clients.GET("/:id/trades", clientHandler.ListClientTrades)
	clients.GET("/:id/letters", clientHandler.ListClientLetters)

	trades := v1.Group("/trades")
	trades.POST("", tradeHandler.CreateTrade)
	trades.GET("/:id", tradeHandler.GetTrade)
	trades.PATCH("/:id", tradeHandler.UpdateTrade)
	trades.DELETE("/:id", tradeHandler.DeleteTrade)

	letters := v1.Group("/letters")
	letters.POST("", letterHandler.CreateLetter)
	letters.GET("/:id", letterHandler.GetLetter)
	letters.PATCH("/:id", letterHandler.UpdateLetter)
	letters.DELETE("/:id", letterHandler.DeleteLetter)

	return router
}
