// backend-go/internal/catalog/store.go
package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/procuresmart/backend-go/internal/domain"
)

// Snapshot is one fully-loaded set of the three normalized tables.
// Snapshots are immutable once built; the store swaps whole snapshots.
type Snapshot struct {
	Materials *Table
	Prices    *Table
	Vendors   *Table
	LoadedAt  time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Materials: EmptyTable("materials"),
		Prices:    EmptyTable("prices"),
		Vendors:   EmptyTable("vendors"),
	}
}

// PriceRow is an uncoerced price history row. Consumers coerce the
// numeric and date fields and drop rows that fail.
type PriceRow struct {
	MaterialID string
	Date       string
	Price      string
	VendorID   string
}

// VendorRow is an uncoerced vendor offer row.
type VendorRow struct {
	MaterialID       string
	VendorID         string
	ReliabilityScore string
	DeliveryDays     string
	PricePerUnit     string
}

// Store owns the latest catalog snapshot. Readers observe either the
// fully-old or fully-new table set, never a partial mix.
type Store struct {
	mu      sync.RWMutex
	snap    *Snapshot
	loadErr error
}

func NewStore() *Store {
	return &Store{
		snap:    emptySnapshot(),
		loadErr: domain.ErrCatalogNotLoaded,
	}
}

// Replace atomically swaps in a new snapshot and clears any load error.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.loadErr = nil
}

// SetLoadError records a failed load. The previous snapshot stays intact.
func (s *Store) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Ready reports the last load error, nil when the catalog is serving
// a successfully loaded snapshot.
func (s *Store) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Store) snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Materials returns deduplicated (material_id, name) pairs in table order.
// Name defaults to the material id when the name column is absent or empty.
func (s *Store) Materials() ([]domain.Material, error) {
	t := s.snapshot().Materials
	if err := t.RequireColumns("material_id"); err != nil {
		return nil, err
	}

	hasName := t.HasColumn("name")
	seen := make(map[domain.Material]bool, t.Len())
	materials := make([]domain.Material, 0, t.Len())
	for _, row := range t.Rows {
		id := strings.TrimSpace(t.Value(row, "material_id"))
		if id == "" {
			continue
		}
		name := id
		if hasName {
			if n := strings.TrimSpace(t.Value(row, "name")); n != "" {
				name = n
			}
		}
		m := domain.Material{MaterialID: id, Name: name}
		if seen[m] {
			continue
		}
		seen[m] = true
		materials = append(materials, m)
	}
	return materials, nil
}

// PriceHistory returns all price rows for the material, matched
// case-insensitively on material_id.
func (s *Store) PriceHistory(materialID string) ([]PriceRow, error) {
	t := s.snapshot().Prices
	if err := t.RequireColumns("material_id", "date", "price"); err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(materialID))
	var rows []PriceRow
	for _, row := range t.Rows {
		id := strings.TrimSpace(t.Value(row, "material_id"))
		if strings.ToLower(id) != want {
			continue
		}
		rows = append(rows, PriceRow{
			MaterialID: id,
			Date:       strings.TrimSpace(t.Value(row, "date")),
			Price:      strings.TrimSpace(t.Value(row, "price")),
			VendorID:   strings.TrimSpace(t.Value(row, "vendor_id")),
		})
	}
	return rows, nil
}

// VendorOffers returns all vendor offer rows for the material, matched
// case-insensitively on material_id.
func (s *Store) VendorOffers(materialID string) ([]VendorRow, error) {
	t := s.snapshot().Vendors
	if err := t.RequireColumns("material_id", "vendor_id", "reliability_score", "delivery_days", "price_per_unit"); err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(materialID))
	var rows []VendorRow
	for _, row := range t.Rows {
		id := strings.TrimSpace(t.Value(row, "material_id"))
		if strings.ToLower(id) != want {
			continue
		}
		rows = append(rows, VendorRow{
			MaterialID:       id,
			VendorID:         strings.TrimSpace(t.Value(row, "vendor_id")),
			ReliabilityScore: strings.TrimSpace(t.Value(row, "reliability_score")),
			DeliveryDays:     strings.TrimSpace(t.Value(row, "delivery_days")),
			PricePerUnit:     strings.TrimSpace(t.Value(row, "price_per_unit")),
		})
	}
	return rows, nil
}
