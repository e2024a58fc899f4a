// backend-go/internal/api/handlers/procurement_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/procuresmart/backend-go/internal/domain"
	"github.com/procuresmart/backend-go/internal/service"
)

// Default criterion weights as percentages, matching the UI sliders.
const (
	defaultPriceWeightPct       = 20
	defaultDeliveryWeightPct    = 30
	defaultReliabilityWeightPct = 50
)

type ProcurementHandler struct {
	svc *service.ProcurementService
}

func NewProcurementHandler(svc *service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{svc: svc}
}

// GetMaterials returns the deduplicated material catalog
func (h *ProcurementHandler) GetMaterials(c *gin.Context) {
	materials, err := h.svc.ListMaterials()
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

// PredictPrice returns the price history and 7-day projections for a material
func (h *ProcurementHandler) PredictPrice(c *gin.Context) {
	materialID := strings.TrimSpace(c.Query("material_id"))
	if materialID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "material_id is required"})
		return
	}

	result, err := h.svc.Forecast(c.Request.Context(), materialID)
	if errors.Is(err, domain.ErrNotEnoughData) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No data for material '%s'", materialID)})
		return
	}
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecommendVendor ranks all vendors for a material by weighted score
func (h *ProcurementHandler) RecommendVendor(c *gin.Context) {
	materialID := strings.TrimSpace(c.Query("material_id"))
	if materialID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "material_id is required"})
		return
	}

	weights, err := parseWeights(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recommendation, err := h.svc.RecommendVendor(materialID, weights)
	if errors.Is(err, domain.ErrNoVendors) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No vendors for material '%s'", materialID)})
		return
	}
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// parseWeights reads percent-valued weight params and scales them to [0,1].
func parseWeights(c *gin.Context) (domain.Weights, error) {
	price, err := parseWeightPct(c.Query("w_price"), defaultPriceWeightPct)
	if err != nil {
		return domain.Weights{}, fmt.Errorf("invalid w_price: %w", err)
	}
	delivery, err := parseWeightPct(c.Query("w_delivery"), defaultDeliveryWeightPct)
	if err != nil {
		return domain.Weights{}, fmt.Errorf("invalid w_delivery: %w", err)
	}
	reliability, err := parseWeightPct(c.Query("w_reliability"), defaultReliabilityWeightPct)
	if err != nil {
		return domain.Weights{}, fmt.Errorf("invalid w_reliability: %w", err)
	}
	return domain.Weights{Price: price, Delivery: delivery, Reliability: reliability}, nil
}

func parseWeightPct(value string, fallback float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback / 100.0, nil
	}
	pct, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if pct < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}
	return pct / 100.0, nil
}
