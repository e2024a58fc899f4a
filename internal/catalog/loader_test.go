package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func writeValidCatalog(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, materialsFile, "Material,Description\nM1,Steel\nM2,Copper\n")
	writeFile(t, dir, pricesFile, "material,date,price,vendor\nM1,2026-01-01,10,V1\nM1,2026-01-02,12,V1\n")
	writeFile(t, dir, vendorsFile, "material_id,vendor_id,reliability_score,avg_delivery_days,price_per_unit\nM1,V1,4,3,100\n")
}

func TestLoader_LoadNormalizesHeaders(t *testing.T) {
	dir := t.TempDir()
	writeValidCatalog(t, dir)

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"material_id", "name"}, snap.Materials.Columns)
	assert.Equal(t, []string{"material_id", "date", "price", "vendor_id"}, snap.Prices.Columns)
	assert.True(t, snap.Vendors.HasColumn("delivery_days"))
	assert.Equal(t, 2, snap.Materials.Len())
	assert.Equal(t, 2, snap.Prices.Len())
	assert.Equal(t, 1, snap.Vendors.Len())
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoader_MissingFileFailsWholeLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, materialsFile, "material_id\nM1\n")
	// prices and vendors files absent

	_, err := NewLoader(dir).Load(context.Background())
	assert.Error(t, err)
}

func TestLoader_RaggedRowsAreKept(t *testing.T) {
	dir := t.TempDir()
	writeValidCatalog(t, dir)
	writeFile(t, dir, pricesFile, "material,date,price\nM1,2026-01-01,10\nM1,2026-01-02\n")

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)

	// short rows survive loading, consumers drop them during coercion
	require.Equal(t, 2, snap.Prices.Len())
	assert.Equal(t, "", snap.Prices.Value(snap.Prices.Rows[1], "price"))
}

func TestLoader_FullReplaceThroughStore(t *testing.T) {
	dir := t.TempDir()
	writeValidCatalog(t, dir)
	loader := NewLoader(dir)

	store := NewStore()
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	store.Replace(snap)

	writeFile(t, dir, materialsFile, "material_id,name\nM9,Titanium\n")
	snap2, err := loader.Load(context.Background())
	require.NoError(t, err)
	store.Replace(snap2)

	materials, err := store.Materials()
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "M9", materials[0].MaterialID)
}
