package main

import (
	"fmt"
	"log"
	"os"

	"corridor-report/internal/api/handlers"
	"corridor-report/internal/api/middleware"
	"corridor-report/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	var logger *zap.Logger
	var err error
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	cfg := config.Default()
	if path := os.Getenv("REPORT_CONFIG"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", path), zap.Error(err))
		}
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	reportHandler := handlers.NewReportHandler(cfg, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/report", reportHandler.RunReport)
	}

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting report API", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
