// backend-go/internal/ranking/ranker.go
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/domain"
)

const reliabilityScale = 5.0

// Ranker scores all vendor offers for a material by a weighted
// combination of normalized price, delivery time and reliability.
type Ranker struct {
	store *catalog.Store
}

func New(store *catalog.Store) *Ranker {
	return &Ranker{store: store}
}

// Rank returns the best vendor and all candidates sorted by final score.
// Rows where any numeric field fails coercion are dropped; an empty
// candidate set reports ErrNoVendors. Equal scores are broken by
// lexicographically smallest vendor id.
func (r *Ranker) Rank(materialID string, weights domain.Weights) (*domain.Recommendation, error) {
	rows, err := r.store.VendorOffers(materialID)
	if err != nil {
		return nil, err
	}

	offers, dropped := CoerceOffers(rows)
	if dropped > 0 {
		log.Debug().Str("material_id", materialID).Int("dropped", dropped).Msg("dropped unparsable vendor rows")
	}
	if len(offers) == 0 {
		return nil, domain.ErrNoVendors
	}

	var maxDelivery, maxPrice float64
	for _, o := range offers {
		if o.DeliveryDays > maxDelivery {
			maxDelivery = o.DeliveryDays
		}
		if o.PricePerUnit > maxPrice {
			maxPrice = o.PricePerUnit
		}
	}

	ranked := make([]domain.RankedVendor, 0, len(offers))
	for _, o := range offers {
		rv := domain.RankedVendor{VendorOffer: o}
		rv.ReliabilityNorm = o.ReliabilityScore / reliabilityScale
		// when every candidate shares the same value the criterion
		// contributes zero, it is not undefined
		if maxDelivery > 0 {
			rv.DeliveryNorm = 1 - o.DeliveryDays/maxDelivery
		}
		if maxPrice > 0 {
			rv.PriceNorm = 1 - o.PricePerUnit/maxPrice
		}
		rv.FinalScore = rv.ReliabilityNorm*weights.Reliability +
			rv.DeliveryNorm*weights.Delivery +
			rv.PriceNorm*weights.Price
		ranked = append(ranked, rv)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].VendorID < ranked[j].VendorID
	})

	best := ranked[0]
	return &domain.Recommendation{
		MaterialID:    materialID,
		BestVendor:    best,
		AllVendors:    ranked,
		WeightedScore: best.FinalScore,
		Breakdown: domain.ScoreBreakdown{
			Reliability: best.ReliabilityNorm * weights.Reliability,
			Delivery:    best.DeliveryNorm * weights.Delivery,
			Price:       best.PriceNorm * weights.Price,
		},
		DroppedRows: dropped,
	}, nil
}

// CoerceOffers converts raw vendor rows into offers, dropping rows
// where any of the three numeric fields fails to parse. Literal NaN
// and infinity values count as failures, matching the drop applied to
// missing values in spreadsheet exports.
func CoerceOffers(rows []catalog.VendorRow) ([]domain.VendorOffer, int) {
	offers := make([]domain.VendorOffer, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		reliability, rerr := parseFinite(row.ReliabilityScore)
		delivery, derr := parseFinite(row.DeliveryDays)
		price, perr := parseFinite(row.PricePerUnit)
		if rerr != nil || derr != nil || perr != nil {
			dropped++
			continue
		}
		offers = append(offers, domain.VendorOffer{
			MaterialID:       row.MaterialID,
			VendorID:         row.VendorID,
			ReliabilityScore: reliability,
			DeliveryDays:     delivery,
			PricePerUnit:     price,
		})
	}
	return offers, dropped
}

func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", value)
	}
	return v, nil
}
