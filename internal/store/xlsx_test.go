package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestXLSX(t *testing.T) *XLSX {
	t.Helper()
	dir := t.TempDir()
	return NewXLSX(filepath.Join(dir, "games.xlsx"), filepath.Join(dir, "ventas_temp.xlsx"))
}

func TestXLSX_CatalogRoundTrip(t *testing.T) {
	x := newTestXLSX(t)

	entries := []CatalogEntry{
		{ID: "G1", Name: "Axiom", Developer: "Nova", Rating: "T", Platforms: []string{"PC", "Nintendo Switch"}, BasePrice: 59.99, Stock: 3},
		{ID: "G2", Name: "Nova Quest", Developer: "Orbit", Rating: "E10+", Platforms: []string{"PlayStation 5"}, BasePrice: 39.9, Stock: 0},
	}
	require.NoError(t, x.SaveCatalog(entries))

	loaded, err := x.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)

	// Reload and save again: contents must be unchanged.
	require.NoError(t, x.SaveCatalog(loaded))
	again, err := x.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestXLSX_LoadCatalogMissingFile(t *testing.T) {
	x := newTestXLSX(t)

	_, err := x.LoadCatalog()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestXLSX_LoadCatalogBadHeader(t *testing.T) {
	x := newTestXLSX(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Nombre", "ID", "Marca"}))
	require.NoError(t, f.SaveAs(x.catalogPath))
	require.NoError(t, f.Close())

	_, err := x.LoadCatalog()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestXLSX_LoadCatalogBadNumber(t *testing.T) {
	x := newTestXLSX(t)

	f := excelize.NewFile()
	head := []interface{}{"Nombre", "ID del Juego", "Marca", "Clasificación", "Plataformas Disponibles", "Precio Base", "Stock"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &head))
	row := []interface{}{"Axiom", "G1", "Nova", "T", "PC", "not-a-price", 3}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	require.NoError(t, f.SaveAs(x.catalogPath))
	require.NoError(t, f.Close())

	_, err := x.LoadCatalog()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestXLSX_LoadSalesMissingFileIsEmpty(t *testing.T) {
	x := newTestXLSX(t)

	records, err := x.LoadSales()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestXLSX_SalesRoundTrip(t *testing.T) {
	x := newTestXLSX(t)

	day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	records := []SaleRecord{
		{Date: day, GameName: "Axiom", Quantity: 2, Total: 119.98},
		{Date: day.AddDate(0, 0, 1), GameName: "Nova Quest", Quantity: 1, Total: 39.9},
	}
	require.NoError(t, x.SaveSales(records))

	loaded, err := x.LoadSales()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, rec := range loaded {
		assert.Equal(t, records[i].Date.Format("2006-01-02"), rec.Date.Format("2006-01-02"))
		assert.Equal(t, records[i].GameName, rec.GameName)
		assert.Equal(t, records[i].Quantity, rec.Quantity)
		assert.InDelta(t, records[i].Total, rec.Total, 0.001)
	}
}

func TestXLSX_SaveOverwritesExistingFile(t *testing.T) {
	x := newTestXLSX(t)

	first := []CatalogEntry{{ID: "G1", Name: "Axiom", Developer: "Nova", Rating: "T", Platforms: []string{"PC"}, BasePrice: 59.99, Stock: 3}}
	require.NoError(t, x.SaveCatalog(first))

	second := []CatalogEntry{{ID: "G2", Name: "Nova Quest", Developer: "Orbit", Rating: "E", Platforms: []string{"PC"}, BasePrice: 39.9, Stock: 2}}
	require.NoError(t, x.SaveCatalog(second))

	loaded, err := x.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestXLSX_SaveLeavesNoTempFile(t *testing.T) {
	x := newTestXLSX(t)

	require.NoError(t, x.SaveCatalog([]CatalogEntry{{ID: "G1", Name: "Axiom", Developer: "Nova", Rating: "T", Platforms: []string{"PC"}, BasePrice: 10, Stock: 1}}))

	_, err := os.Stat(x.catalogPath + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(x.catalogPath)
	assert.NoError(t, err)
}

func TestXLSX_SaveCreatesDataDir(t *testing.T) {
	dir := t.TempDir()
	x := NewXLSX(filepath.Join(dir, "data", "games.xlsx"), filepath.Join(dir, "data", "ventas_temp.xlsx"))

	require.NoError(t, x.SaveCatalog(nil))

	loaded, err := x.LoadCatalog()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
