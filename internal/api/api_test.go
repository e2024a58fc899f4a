package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	files := map[string]string{
		"materials.csv": "material_id,name\nM1,Steel\n",
		"material_prices.csv": "material_id,date,price\n" +
			"M1,2026-01-01,10\nM1,2026-01-02,12\nM1,2026-01-03,11\n",
		"vendors.csv": "material_id,vendor_id,reliability_score,delivery_days,price_per_unit\n" +
			"M1,V1,4,3,100\nM1,V2,5,10,80\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	svc := service.NewProcurementService(catalog.NewLoader(dir), nil)
	require.NoError(t, svc.Reload(context.Background()))
	return NewRouter(svc, nil)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_Materials(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/materials", "")
	require.Equal(t, http.StatusOK, w.Code)

	var materials []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &materials))
	require.Len(t, materials, 1)
	assert.Equal(t, "M1", materials[0]["material_id"])
}

func TestRouter_PredictRequiresMaterialID(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/predict", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_PredictUnknownMaterialIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/predict?material_id=NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PredictReturnsSevenProjections(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/predict?material_id=M1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		MaterialID  string            `json:"material_id"`
		Historical  []json.RawMessage `json:"historical_data"`
		Predictions []json.RawMessage `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "M1", payload.MaterialID)
	assert.Len(t, payload.Historical, 3)
	assert.Len(t, payload.Predictions, 7)
}

func TestRouter_RecommendVendorDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/recommend_vendor?material_id=M1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		BestVendor struct {
			VendorID string `json:"vendor_id"`
		} `json:"best_vendor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "V1", payload.BestVendor.VendorID)
}

func TestRouter_RecommendVendorRejectsBadWeight(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/recommend_vendor?material_id=M1&w_price=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_EvaluateValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/evaluate", `{"material_id":"M1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/evaluate",
		`{"material_id":"M1","quantity":50,"deadline":"soonish"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_EvaluateAndAlerts(t *testing.T) {
	router := newTestRouter(t)

	deadline := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	w := doRequest(router, http.MethodPost, "/api/v1/evaluate",
		`{"material_id":"M1","quantity":50,"deadline":"`+deadline+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var outcome struct {
		Status      string  `json:"status"`
		IsFeasible  bool    `json:"is_feasible"`
		TotalPrice  float64 `json:"total_price"`
		ReminderSet bool    `json:"reminder_set"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, "feasible", outcome.Status)
	assert.True(t, outcome.IsFeasible)
	assert.True(t, outcome.ReminderSet)

	// reminder is 8 days out, nothing is due yet
	w = doRequest(router, http.MethodGet, "/api/v1/alerts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
