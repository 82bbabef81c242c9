package api

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameverse/internal/auth"
	"gameverse/internal/catalog"
	"gameverse/internal/sales"
	"gameverse/internal/store"
)

// shopHandler holds the core services and implements the HTTP handlers.
// It owns no business rules: every decision is made by the ledger, the
// recorder or the credential check.
type shopHandler struct {
	ledger   *catalog.Ledger
	recorder *sales.Recorder
	admins   map[string]string
	logger   *zap.Logger
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(ledger *catalog.Ledger, recorder *sales.Recorder, admins map[string]string, logger *zap.Logger) *shopHandler {
	return &shopHandler{
		ledger:   ledger,
		recorder: recorder,
		admins:   admins,
		logger:   logger,
	}
}

// handleListCatalog handles GET /catalog with optional developer,
// max_price and platform filters.
func (h *shopHandler) handleListCatalog(ctx *gin.Context) {
	filter := catalog.Filter{
		Developer: ctx.Query("developer"),
		Platform:  ctx.Query("platform"),
	}
	if raw := ctx.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filter.MaxPrice = &maxPrice
	}

	results := slices.Collect(h.ledger.Query(filter))
	if results == nil {
		results = []store.CatalogEntry{}
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// handleFilterOptions handles GET /catalog/filters, the values the UI
// offers in its developer and platform drop-downs.
func (h *shopHandler) handleFilterOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"developers": h.ledger.Developers(),
		"platforms":  h.ledger.Platforms(),
	})
}

// handleAddGame handles POST /catalog.
func (h *shopHandler) handleAddGame(ctx *gin.Context) {
	var req store.CatalogEntry
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.ledger.AddGame(req); err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, req)
}

// handleUpdateStock handles PATCH /catalog/:id/stock.
func (h *shopHandler) handleUpdateStock(ctx *gin.Context) {
	var req struct {
		NewStock *int `json:"new_stock"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.NewStock == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	id := ctx.Param("id")
	if err := h.ledger.UpdateStock(id, *req.NewStock); err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "new_stock": *req.NewStock})
}

// handleDeleteGame handles DELETE /catalog/:id.
func (h *shopHandler) handleDeleteGame(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := h.ledger.DeleteGame(id); err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleSell handles POST /sales.
func (h *shopHandler) handleSell(ctx *gin.Context) {
	var req struct {
		GameID   string `json:"game_id"`
		Quantity int    `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	receipt, err := h.recorder.Sell(req.GameID, req.Quantity)
	if err != nil {
		h.logger.Error("failed to process sale", zap.String("game_id", req.GameID), zap.Int("quantity", req.Quantity), zap.Error(err))
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// handleStats handles GET /sales/stats with an optional developer filter.
func (h *shopHandler) handleStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.recorder.Aggregate(ctx.Query("developer")))
}

// handleLogin handles POST /login against the configured admin map.
func (h *shopHandler) handleLogin(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if !auth.Verify(h.admins, req.Email, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// writeError maps a core error to an HTTP status.
func (h *shopHandler) writeError(ctx *gin.Context, err error) {
	var persistErr *sales.PersistError

	switch {
	case errors.Is(err, catalog.ErrInvalidField):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrDuplicateID),
		errors.Is(err, sales.ErrOutOfStock),
		errors.Is(err, sales.ErrInsufficientStock):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &persistErr):
		// El stock ya quedó descontado; el caller decide si reintenta el log.
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":                "sale not logged",
			"applied_stock_change": persistErr.Applied,
		})
	case errors.Is(err, store.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
