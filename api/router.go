package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameverse/internal/catalog"
	"gameverse/internal/config"
	"gameverse/internal/sales"
	"gameverse/internal/store"
)

// InitRoutes registers every shop endpoint on the given Gin engine. It
// wires the spreadsheet store into the ledger and recorder, builds the
// handler, then binds each HTTP method and path to it.
func InitRoutes(e *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	st := store.NewXLSX(cfg.Store.CatalogPath, cfg.Store.SalesPath)
	ledger := catalog.NewLedger(st, logger)
	recorder := sales.NewRecorder(st, logger)
	handler := NewShopHandler(ledger, recorder, cfg.Admins, logger)

	e.GET("/catalog", handler.handleListCatalog)
	e.GET("/catalog/filters", handler.handleFilterOptions)
	e.POST("/catalog", handler.handleAddGame)
	e.PATCH("/catalog/:id/stock", handler.handleUpdateStock)
	e.DELETE("/catalog/:id", handler.handleDeleteGame)

	e.POST("/sales", handler.handleSell)
	e.GET("/sales/stats", handler.handleStats)

	e.POST("/login", handler.handleLogin)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
