package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuresmart/backend-go/internal/domain"
)

func snapshotWith(materials, prices, vendors *Table) *Snapshot {
	if materials == nil {
		materials = EmptyTable("materials")
	}
	if prices == nil {
		prices = EmptyTable("prices")
	}
	if vendors == nil {
		vendors = EmptyTable("vendors")
	}
	return &Snapshot{Materials: materials, Prices: prices, Vendors: vendors}
}

func TestStore_MaterialsDedupAndNameDefault(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWith(NewTable("materials",
		[]string{"material_id", "name"},
		[][]string{
			{"M1", "Steel"},
			{"M1", "Steel"},
			{"M2", ""},
			{"", "orphan"},
		}), nil, nil))

	materials, err := store.Materials()
	require.NoError(t, err)

	assert.Equal(t, []domain.Material{
		{MaterialID: "M1", Name: "Steel"},
		{MaterialID: "M2", Name: "M2"},
	}, materials)
}

func TestStore_MaterialsNameColumnAbsent(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWith(NewTable("materials",
		[]string{"material_id"},
		[][]string{{"M1"}}), nil, nil))

	materials, err := store.Materials()
	require.NoError(t, err)
	assert.Equal(t, "M1", materials[0].Name)
}

func TestStore_SchemaErrorOnMissingColumn(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWith(NewTable("materials",
		[]string{"name"},
		[][]string{{"Steel"}}), nil, nil))

	_, err := store.Materials()

	var schemaErr *domain.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "materials", schemaErr.Table)
	assert.Equal(t, "material_id", schemaErr.Column)
}

func TestStore_PriceHistoryCaseInsensitive(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWith(nil, NewTable("prices",
		[]string{"material_id", "date", "price"},
		[][]string{
			{"m1", "2026-01-01", "10"},
			{"M1", "2026-01-02", "11"},
			{"M2", "2026-01-01", "99"},
		}), nil))

	rows, err := store.PriceHistory("M1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].Price)
	assert.Equal(t, "11", rows[1].Price)
}

func TestStore_VendorOffersRequireAllColumns(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWith(nil, nil, NewTable("vendors",
		[]string{"material_id", "vendor_id", "reliability_score"},
		nil)))

	_, err := store.VendorOffers("M1")

	var schemaErr *domain.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "delivery_days", schemaErr.Column)
}

func TestStore_LoadErrorKeepsPreviousSnapshot(t *testing.T) {
	store := NewStore()
	assert.ErrorIs(t, store.Ready(), domain.ErrCatalogNotLoaded)

	store.Replace(snapshotWith(NewTable("materials",
		[]string{"material_id"},
		[][]string{{"M1"}}), nil, nil))
	require.NoError(t, store.Ready())

	loadErr := errors.New("boom")
	store.SetLoadError(loadErr)

	assert.ErrorIs(t, store.Ready(), loadErr)
	materials, err := store.Materials()
	require.NoError(t, err)
	assert.Len(t, materials, 1, "previous snapshot must survive a failed load")
}
