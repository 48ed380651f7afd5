package main

import (
	"log"

	"worklines-api/internal/auth"
	"worklines-api/internal/config"
	"worklines-api/internal/database"
	"worklines-api/internal/logger"
	"worklines-api/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.Log)
	defer logger.Sync()

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)

	// Init database and seed the default line + admin accounts
	database.InitDB(cfg.Database.Path)
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRoutes := routes.SetupRoutes(cfg)

	port := ":" + cfg.Server.Port
	logger.L().Infow("server starting", "port", port)

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
