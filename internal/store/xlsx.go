package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column headers of the two backing spreadsheets. The order is part of the
// on-disk contract and must not change.
var (
	catalogHeader = []string{"Nombre", "ID del Juego", "Marca", "Clasificación", "Plataformas Disponibles", "Precio Base", "Stock"}
	salesHeader   = []string{"Fecha", "Juego", "Cantidad", "Total"}
)

const dateLayout = "2006-01-02"

// platformSep joins the platform set into a single cell.
const platformSep = ", "

// XLSX is the spreadsheet-backed Store. Each load opens the file fresh and
// each save rewrites the whole table through a temp file plus rename, so a
// failed write never leaves the previous contents unreadable.
type XLSX struct {
	catalogPath string
	salesPath   string
}

// NewXLSX creates a Store over the two spreadsheet paths.
func NewXLSX(catalogPath, salesPath string) *XLSX {
	return &XLSX{catalogPath: catalogPath, salesPath: salesPath}
}

func (x *XLSX) LoadCatalog() ([]CatalogEntry, error) {
	rows, err := readTable(x.catalogPath, catalogHeader)
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for i, row := range rows {
		price, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad price %q", ErrUnavailable, x.catalogPath, i+2, row[5])
		}
		stock, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad stock %q", ErrUnavailable, x.catalogPath, i+2, row[6])
		}
		entries = append(entries, CatalogEntry{
			Name:      row[0],
			ID:        row[1],
			Developer: row[2],
			Rating:    row[3],
			Platforms: splitPlatforms(row[4]),
			BasePrice: price,
			Stock:     stock,
		})
	}
	return entries, nil
}

func (x *XLSX) SaveCatalog(entries []CatalogEntry) error {
	rows := make([][]interface{}, len(entries))
	for i, e := range entries {
		rows[i] = []interface{}{e.Name, e.ID, e.Developer, e.Rating, strings.Join(e.Platforms, platformSep), e.BasePrice, e.Stock}
	}
	return writeTable(x.catalogPath, catalogHeader, rows)
}

func (x *XLSX) LoadSales() ([]SaleRecord, error) {
	if _, err := os.Stat(x.salesPath); os.IsNotExist(err) {
		return []SaleRecord{}, nil
	}

	rows, err := readTable(x.salesPath, salesHeader)
	if err != nil {
		return nil, err
	}

	records := make([]SaleRecord, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad date %q", ErrUnavailable, x.salesPath, i+2, row[0])
		}
		qty, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad quantity %q", ErrUnavailable, x.salesPath, i+2, row[2])
		}
		total, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: bad total %q", ErrUnavailable, x.salesPath, i+2, row[3])
		}
		records = append(records, SaleRecord{Date: date, GameName: row[1], Quantity: qty, Total: total})
	}
	return records, nil
}

func (x *XLSX) SaveSales(records []SaleRecord) error {
	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{r.Date.Format(dateLayout), r.GameName, r.Quantity, r.Total}
	}
	return writeTable(x.salesPath, salesHeader, rows)
}

// readTable opens the spreadsheet and returns its data rows with every row
// padded to the header width. The header row must match exactly.
func readTable(path string, header []string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	if len(rows) == 0 || !slices.Equal(rows[0], header) {
		return nil, fmt.Errorf("%w: %s: header does not match schema", ErrUnavailable, path)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row)
	}
	return data, nil
}

// writeTable rewrites the whole spreadsheet: header row first, then the data
// rows, saved to a temp file and renamed over the target.
func writeTable(path string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
		}
	}
	// f.SaveAs refuses non-spreadsheet extensions, so the temp file is
	// written through f.Write instead.
	tmp := path + ".tmp"
	w, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	if err := f.Write(w); err != nil {
		w.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	if err := w.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	return nil
}

func splitPlatforms(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, platformSep)
	platforms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
