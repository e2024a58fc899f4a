// backend-go/internal/api/handlers/feasibility_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/procuresmart/backend-go/internal/domain"
	"github.com/procuresmart/backend-go/internal/service"
)

type FeasibilityHandler struct {
	svc *service.ProcurementService
}

func NewFeasibilityHandler(svc *service.ProcurementService) *FeasibilityHandler {
	return &FeasibilityHandler{svc: svc}
}

type evaluateRequest struct {
	MaterialID string `json:"material_id" binding:"required"`
	Quantity   int64  `json:"quantity" binding:"required,gt=0"`
	Deadline   string `json:"deadline" binding:"required"`
}

// EvaluateRequirement checks whether any vendor can meet the requirement
func (h *FeasibilityHandler) EvaluateRequirement(c *gin.Context) {
	var body evaluateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "material_id, quantity and deadline are required"})
		return
	}

	deadline, err := time.Parse("2006-01-02", body.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be a YYYY-MM-DD date"})
		return
	}

	outcome, err := h.svc.Evaluate(domain.Requirement{
		MaterialID: body.MaterialID,
		Quantity:   body.Quantity,
		Deadline:   deadline,
	}, time.Now())
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetAlerts drains and returns all due reminder alerts
func (h *FeasibilityHandler) GetAlerts(c *gin.Context) {
	alerts := h.svc.CollectDueAlerts(time.Now())
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// Refresh reloads the catalog from the data directory
func (h *FeasibilityHandler) Refresh(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog reload failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catalog reloaded"})
}

// respondEngineError maps engine errors to transport responses.
func respondEngineError(c *gin.Context, err error) {
	var schemaErr *domain.SchemaError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &schemaErr):
		log.Error().Err(err).Msg("schema error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": schemaErr.Error()})
	default:
		log.Error().Err(err).Msg("engine error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
