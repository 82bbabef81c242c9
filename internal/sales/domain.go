package sales

import (
	"errors"
	"fmt"
)

// ErrOutOfStock is returned when the game has no stock left at all.
var ErrOutOfStock = errors.New("out of stock")

// ErrInsufficientStock is returned when the requested quantity exceeds the
// available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// Receipt is the payload returned to the caller after a completed sale.
type Receipt struct {
	ID       string  `json:"id"`
	GameName string  `json:"game_name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
	NewStock int     `json:"new_stock"`
}

// StockChange describes a stock decrement that has already been persisted.
type StockChange struct {
	GameID        string `json:"game_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

// PersistError reports a sales-log write that failed after the stock
// decrement was already saved. The stock change is retained, not rolled
// back; the caller can retry the log append without charging stock again.
type PersistError struct {
	Applied StockChange
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("sale not logged, stock already moved %d -> %d for %s: %v",
		e.Applied.PreviousStock, e.Applied.NewStock, e.Applied.GameID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// DayTotal is the revenue summed over one calendar day.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Stats aggregates the sales log for display. A zero Stats means no sales
// matched.
type Stats struct {
	TotalRevenue    float64    `json:"total_revenue"`
	Units           int        `json:"units"`
	Count           int        `json:"count"`
	BestSeller      string     `json:"best_seller"`
	BestSellerUnits int        `json:"best_seller_units"`
	ByDate          []DayTotal `json:"by_date"`
}
