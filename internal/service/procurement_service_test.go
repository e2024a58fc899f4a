package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/domain"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"materials.csv": "Material,Description\nM1,Steel\n",
		"material_prices.csv": "material,date,price\n" +
			"M1,2026-01-01,10\nM1,2026-01-02,12\nM1,2026-01-03,11\nM1,2026-01-04,13\nM1,2026-01-05,15\n",
		"vendors.csv": "material_id,vendor_id,reliability_score,delivery_days,price_per_unit\n" +
			"M1,V1,4,3,100\nM1,V2,5,10,80\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newTestService(t *testing.T) *ProcurementService {
	t.Helper()
	svc := NewProcurementService(catalog.NewLoader(writeCatalog(t)), nil)
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

func TestService_EndToEnd(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Ready())

	materials, err := svc.ListMaterials()
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, domain.Material{MaterialID: "M1", Name: "Steel"}, materials[0])

	forecast, err := svc.Forecast(context.Background(), "M1")
	require.NoError(t, err)
	assert.Len(t, forecast.Projections, 7)

	rec, err := svc.RecommendVendor("M1", domain.Weights{Price: 0.2, Delivery: 0.3, Reliability: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "V1", rec.BestVendor.VendorID)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	outcome, err := svc.Evaluate(domain.Requirement{
		MaterialID: "M1",
		Quantity:   50,
		Deadline:   today.AddDate(0, 0, 10),
	}, today)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFeasible, outcome.Status)
	assert.Equal(t, 1, svc.PendingReminders())

	alerts := svc.CollectDueAlerts(today.AddDate(0, 0, 9))
	require.Len(t, alerts, 1)
	assert.Empty(t, svc.CollectDueAlerts(today.AddDate(0, 0, 9)))
}

func TestService_FailedReloadKeepsServing(t *testing.T) {
	dir := writeCatalog(t)
	svc := NewProcurementService(catalog.NewLoader(dir), nil)
	require.NoError(t, svc.Reload(context.Background()))

	// break the data dir and reload
	require.NoError(t, os.Remove(filepath.Join(dir, "vendors.csv")))
	err := svc.Reload(context.Background())
	require.Error(t, err)
	assert.Error(t, svc.Ready())

	// previous snapshot still answers queries
	materials, err := svc.ListMaterials()
	require.NoError(t, err)
	assert.Len(t, materials, 1)
}

func TestService_ReadyBeforeFirstLoad(t *testing.T) {
	svc := NewProcurementService(catalog.NewLoader(t.TempDir()), nil)
	assert.ErrorIs(t, svc.Ready(), domain.ErrCatalogNotLoaded)
}
