package sales

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameverse/internal/catalog"
	"gameverse/internal/store"
)

// Recorder executes sales against the catalog and keeps the append-only
// sales log. A sale spans both tables: the stock decrement is persisted
// first, then the sale row is appended. A failure between the two is
// surfaced as *PersistError and never rolled back.
type Recorder struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a new Recorder.
func NewRecorder(st store.Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Recorder{store: st, logger: logger, now: time.Now}
}

// Sell decrements the stock of the given game and appends a row to the
// sales log dated today. All validation runs before anything is written.
func (r *Recorder) Sell(gameID string, quantity int) (*Receipt, error) {
	entries, err := r.store.LoadCatalog()
	if err != nil {
		r.logger.Error("failed to load catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	idx := slices.IndexFunc(entries, func(e store.CatalogEntry) bool { return e.ID == gameID })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, gameID)
	}
	entry := entries[idx]

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", catalog.ErrInvalidField)
	}
	if entry.Stock == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, gameID)
	}
	if quantity > entry.Stock {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, entry.Stock)
	}

	total := float64(quantity) * entry.BasePrice
	newStock := entry.Stock - quantity

	entries[idx].Stock = newStock
	if err := r.store.SaveCatalog(entries); err != nil {
		r.logger.Error("failed to save catalog", zap.String("game_id", gameID), zap.Error(err))
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	applied := StockChange{GameID: gameID, PreviousStock: entry.Stock, NewStock: newStock}

	records, err := r.store.LoadSales()
	if err != nil {
		r.logger.Error("stock decremented but sales log unreadable", zap.String("game_id", gameID), zap.Error(err))
		return nil, &PersistError{Applied: applied, Err: err}
	}
	records = append(records, store.SaleRecord{
		Date:     r.now(),
		GameName: entry.Name,
		Quantity: quantity,
		Total:    total,
	})
	if err := r.store.SaveSales(records); err != nil {
		r.logger.Error("stock decremented but sale not logged", zap.String("game_id", gameID), zap.Error(err))
		return nil, &PersistError{Applied: applied, Err: err}
	}

	receipt := &Receipt{
		ID:       uuid.NewString(),
		GameName: entry.Name,
		Quantity: quantity,
		Total:    total,
		NewStock: newStock,
	}
	r.logger.Info("sale completed",
		zap.String("receipt_id", receipt.ID),
		zap.String("game_id", gameID),
		zap.Int("quantity", quantity),
		zap.Float64("total", total),
		zap.Int("new_stock", newStock),
	)
	return receipt, nil
}

// Aggregate computes display statistics over the sales log, optionally
// restricted to games of one developer by cross-referencing the current
// catalog. An empty or unavailable log yields zero Stats, never an error.
func (r *Recorder) Aggregate(developer string) Stats {
	records, err := r.store.LoadSales()
	if err != nil {
		r.logger.Warn("sales log unavailable, serving empty stats", zap.Error(err))
		records = nil
	}

	var byDev map[string]bool
	if developer != "" {
		byDev = map[string]bool{}
		entries, err := r.store.LoadCatalog()
		if err != nil {
			r.logger.Warn("catalog unavailable for developer filter", zap.Error(err))
		}
		for _, e := range entries {
			if e.Developer == developer {
				byDev[e.Name] = true
			}
		}
	}

	stats := Stats{}
	unitsByGame := map[string]int{}
	var gameOrder []string
	revenueByDate := map[string]float64{}

	for _, rec := range records {
		if byDev != nil && !byDev[rec.GameName] {
			continue
		}
		stats.Count++
		stats.Units += rec.Quantity
		stats.TotalRevenue += rec.Total

		if _, seen := unitsByGame[rec.GameName]; !seen {
			gameOrder = append(gameOrder, rec.GameName)
		}
		unitsByGame[rec.GameName] += rec.Quantity

		day := rec.Date.Format("2006-01-02")
		revenueByDate[day] += rec.Total
	}

	// Ties go to the game seen first in the log.
	for _, name := range gameOrder {
		if unitsByGame[name] > stats.BestSellerUnits {
			stats.BestSeller = name
			stats.BestSellerUnits = unitsByGame[name]
		}
	}

	days := make([]string, 0, len(revenueByDate))
	for day := range revenueByDate {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		stats.ByDate = append(stats.ByDate, DayTotal{Date: day, Total: revenueByDate[day]})
	}

	r.logger.Info("sales aggregated",
		zap.String("developer_filter", developer),
		zap.Int("records", stats.Count),
		zap.Float64("total_revenue", stats.TotalRevenue),
	)
	return stats
}
