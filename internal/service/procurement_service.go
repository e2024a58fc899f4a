// backend-go/internal/service/procurement_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/procuresmart/backend-go/internal/cache"
	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/domain"
	"github.com/procuresmart/backend-go/internal/feasibility"
	"github.com/procuresmart/backend-go/internal/forecast"
	"github.com/procuresmart/backend-go/internal/ranking"
	"github.com/procuresmart/backend-go/internal/reminder"
)

// ProcurementService exposes the engine operations to the transport layer.
type ProcurementService struct {
	store      *catalog.Store
	loader     *catalog.Loader
	forecaster *forecast.Forecaster
	ranker     *ranking.Ranker
	evaluator  *feasibility.Evaluator
	queue      *reminder.Queue
	cache      cache.ForecastCache
}

func NewProcurementService(loader *catalog.Loader, cacheImpl cache.ForecastCache) *ProcurementService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	store := catalog.NewStore()
	queue := reminder.NewQueue()
	return &ProcurementService{
		store:      store,
		loader:     loader,
		forecaster: forecast.New(store),
		ranker:     ranking.New(store),
		evaluator:  feasibility.New(store, queue),
		queue:      queue,
		cache:      cacheImpl,
	}
}

// Reload replaces the catalog snapshot. A failed load keeps the previous
// snapshot and records the error so Ready reports degraded state.
func (s *ProcurementService) Reload(ctx context.Context) error {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.store.SetLoadError(err)
		log.Error().Err(err).Msg("catalog load failed, keeping previous snapshot")
		return err
	}
	s.store.Replace(snap)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("forecast cache invalidation failed")
	}
	log.Info().
		Int("materials", snap.Materials.Len()).
		Int("prices", snap.Prices.Len()).
		Int("vendors", snap.Vendors.Len()).
		Msg("catalog loaded")
	return nil
}

// Ready reports the catalog initialization status.
func (s *ProcurementService) Ready() error {
	return s.store.Ready()
}

func (s *ProcurementService) ListMaterials() ([]domain.Material, error) {
	return s.store.Materials()
}

func (s *ProcurementService) Forecast(ctx context.Context, materialID string) (*domain.ForecastResult, error) {
	if result, ok, err := s.cache.Get(ctx, materialID); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	result, err := s.forecaster.Forecast(materialID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, materialID, result); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}
	return result, nil
}

func (s *ProcurementService) RecommendVendor(materialID string, weights domain.Weights) (*domain.Recommendation, error) {
	return s.ranker.Rank(materialID, weights)
}

func (s *ProcurementService) Evaluate(req domain.Requirement, today time.Time) (*domain.EvaluationOutcome, error) {
	return s.evaluator.Evaluate(req, today)
}

func (s *ProcurementService) CollectDueAlerts(today time.Time) []domain.Alert {
	return s.queue.CollectDue(today)
}

// PendingReminders reports queue depth for observability.
func (s *ProcurementService) PendingReminders() int {
	return s.queue.Pending()
}
