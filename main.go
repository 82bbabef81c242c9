package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameverse/api"
	"gameverse/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	r := gin.Default()
	api.InitRoutes(r, cfg, logger)

	if err := r.Run(":" + cfg.API.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
