package catalog

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"gameverse/internal/store"
)

// ErrDuplicateID is returned when adding a game whose ID already exists.
var ErrDuplicateID = errors.New("duplicate game id")

// ErrInvalidField is returned when a field fails validation.
var ErrInvalidField = errors.New("invalid field")

// ErrNotFound is returned when no game with the given ID exists.
var ErrNotFound = errors.New("game not found")

// Ledger provides validated mutations and queries over the catalog table.
// Every operation loads a fresh snapshot from the store and, when it
// mutates, writes the whole table back.
type Ledger struct {
	store  store.Store
	logger *zap.Logger
}

// NewLedger creates a new Ledger.
func NewLedger(st store.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Ledger{store: st, logger: logger}
}

// Filter restricts a catalog query. Zero-valued fields match everything;
// set fields compose with logical AND.
type Filter struct {
	Developer string
	MaxPrice  *float64
	Platform  string
}

func (f Filter) matches(e store.CatalogEntry) bool {
	if f.Developer != "" && e.Developer != f.Developer {
		return false
	}
	if f.MaxPrice != nil && e.BasePrice > *f.MaxPrice {
		return false
	}
	if f.Platform != "" && !slices.Contains(e.Platforms, f.Platform) {
		return false
	}
	return true
}

// AddGame validates the entry, checks ID uniqueness and appends it to the
// catalog. All validation runs before anything is written.
func (l *Ledger) AddGame(entry store.CatalogEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	entries, err := l.store.LoadCatalog()
	if err != nil {
		l.logger.Error("failed to load catalog", zap.Error(err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, e := range entries {
		if e.ID == entry.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}
	}

	entries = append(entries, entry)
	if err := l.store.SaveCatalog(entries); err != nil {
		l.logger.Error("failed to save catalog", zap.String("game_id", entry.ID), zap.Error(err))
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	l.logger.Info("game added", zap.String("game_id", entry.ID), zap.String("name", entry.Name))
	return nil
}

// UpdateStock replaces the stock count of an existing game.
func (l *Ledger) UpdateStock(id string, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidField)
	}

	entries, err := l.store.LoadCatalog()
	if err != nil {
		l.logger.Error("failed to load catalog", zap.Error(err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	idx := slices.IndexFunc(entries, func(e store.CatalogEntry) bool { return e.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	entries[idx].Stock = newStock
	if err := l.store.SaveCatalog(entries); err != nil {
		l.logger.Error("failed to save catalog", zap.String("game_id", id), zap.Error(err))
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	l.logger.Info("stock updated", zap.String("game_id", id), zap.Int("new_stock", newStock))
	return nil
}

// DeleteGame removes the game with the given ID. There is no soft delete.
func (l *Ledger) DeleteGame(id string) error {
	entries, err := l.store.LoadCatalog()
	if err != nil {
		l.logger.Error("failed to load catalog", zap.Error(err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	remaining := slices.DeleteFunc(slices.Clone(entries), func(e store.CatalogEntry) bool { return e.ID == id })
	if len(remaining) == len(entries) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := l.store.SaveCatalog(remaining); err != nil {
		l.logger.Error("failed to save catalog", zap.String("game_id", id), zap.Error(err))
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	l.logger.Info("game deleted", zap.String("game_id", id))
	return nil
}

// Query returns the catalog entries matching the filter, in the store's row
// order. The sequence is a restartable view over the snapshot loaded for
// this call and never touches the store again. An unavailable store reads
// as an empty catalog so browsing stays usable.
func (l *Ledger) Query(f Filter) iter.Seq[store.CatalogEntry] {
	entries, err := l.store.LoadCatalog()
	if err != nil {
		l.logger.Warn("catalog unavailable, serving empty view", zap.Error(err))
		entries = nil
	}

	return func(yield func(store.CatalogEntry) bool) {
		for _, e := range entries {
			if f.matches(e) && !yield(e) {
				return
			}
		}
	}
}

// Developers returns the sorted distinct developer names in the catalog.
// The presentation layer uses this to populate its filter options.
func (l *Ledger) Developers() []string {
	return l.distinct(func(e store.CatalogEntry) []string { return []string{e.Developer} })
}

// Platforms returns the sorted distinct platform names across the catalog.
func (l *Ledger) Platforms() []string {
	return l.distinct(func(e store.CatalogEntry) []string { return e.Platforms })
}

func (l *Ledger) distinct(values func(store.CatalogEntry) []string) []string {
	seen := map[string]bool{}
	var out []string
	for e := range l.Query(Filter{}) {
		for _, v := range values(e) {
			if v != "" && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

func validateEntry(e store.CatalogEntry) error {
	// Rating is not required: the classification set is open in practice
	// and an entry may carry none.
	required := []struct{ field, value string }{
		{"id", e.ID},
		{"name", e.Name},
		{"developer", e.Developer},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidField, r.field)
		}
	}
	if e.BasePrice < 0 {
		return fmt.Errorf("%w: base price cannot be negative", ErrInvalidField)
	}
	if e.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidField)
	}
	if len(e.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidField)
	}
	return nil
}
