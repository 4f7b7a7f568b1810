package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/handlers"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/middleware"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/local"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	engine.Use(middleware.DecompressRequest(cfg.MaxReceiptBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{local.ReceiptsPath})))

	if cfg.StorageBackend == config.BackendLocal {
		engine.Static(local.ReceiptsPath, cfg.ReceiptsDir)
	}

	authHandler := handlers.NewAuthHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade, cfg.MaxReceiptBytes)
	reportHandler := handlers.NewReportHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/me", authHandler.Me)

	authed.GET("/withdrawals", withdrawalHandler.List)
	authed.POST("/withdrawals", withdrawalHandler.Create)
	authed.GET("/withdrawals/:id/share", withdrawalHandler.Share)
	authed.DELETE("/withdrawals/:id", middleware.AdminRequired(), withdrawalHandler.Delete)

	authed.POST("/reports", reportHandler.Run)
	authed.GET("/reports", reportHandler.Current)
	authed.GET("/reports/pdf", reportHandler.PDF)
	authed.GET("/reports/xlsx", reportHandler.XLSX)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", "Authorization"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
