package store

import "slices"

// Memory provides an in-memory implementation of Store, used as the test
// double for the ledger and recorder. The error fields, when set, are
// returned by the matching call to simulate a broken backing file.
type Memory struct {
	Catalog []CatalogEntry
	Sales   []SaleRecord

	CatalogLoadErr error
	CatalogSaveErr error
	SalesLoadErr   error
	SalesSaveErr   error
}

// NewMemory instantiates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadCatalog() ([]CatalogEntry, error) {
	if m.CatalogLoadErr != nil {
		return nil, m.CatalogLoadErr
	}
	return slices.Clone(m.Catalog), nil
}

func (m *Memory) SaveCatalog(entries []CatalogEntry) error {
	if m.CatalogSaveErr != nil {
		return m.CatalogSaveErr
	}
	m.Catalog = slices.Clone(entries)
	return nil
}

func (m *Memory) LoadSales() ([]SaleRecord, error) {
	if m.SalesLoadErr != nil {
		return nil, m.SalesLoadErr
	}
	return slices.Clone(m.Sales), nil
}

func (m *Memory) SaveSales(records []SaleRecord) error {
	if m.SalesSaveErr != nil {
		return m.SalesSaveErr
	}
	m.Sales = slices.Clone(records)
	return nil
}
