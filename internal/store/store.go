package store

import (
	"errors"
	"time"
)

// ErrUnavailable is returned when a table required for a read is missing or
// does not match the expected schema.
var ErrUnavailable = errors.New("store unavailable")

// ErrPersist is returned when a table could not be written back to disk.
var ErrPersist = errors.New("persist failure")

// CatalogEntry is one row of the catalog table.
type CatalogEntry struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Developer string   `json:"developer"`
	Rating    string   `json:"rating"`
	Platforms []string `json:"platforms"`
	BasePrice float64  `json:"base_price"`
	Stock     int      `json:"stock"`
}

// SaleRecord is one row of the sales log. Date carries day granularity.
type SaleRecord struct {
	Date     time.Time `json:"date"`
	GameName string    `json:"game_name"`
	Quantity int       `json:"quantity"`
	Total    float64   `json:"total"`
}

// Store is the persistence boundary for both tables. Every call reads or
// writes the whole table; there is no caching between calls.
type Store interface {
	// LoadCatalog returns every catalog row. A missing or malformed file
	// yields ErrUnavailable.
	LoadCatalog() ([]CatalogEntry, error)
	// SaveCatalog overwrites the catalog table with the given rows.
	SaveCatalog(entries []CatalogEntry) error
	// LoadSales returns every sales row. A missing file is an empty log.
	LoadSales() ([]SaleRecord, error)
	// SaveSales overwrites the sales log with the given rows.
	SaveSales(records []SaleRecord) error
}
