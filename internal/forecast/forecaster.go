// backend-go/internal/forecast/forecaster.go
package forecast

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/domain"
)

const (
	horizonDays = 7
	dateFormat  = "2006-01-02"
)

// layouts accepted for price history dates, tried in order
var dateLayouts = []string{
	dateFormat,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// Forecaster fits a linear trend to a material's price history and
// projects a short future window with a fixed-width confidence band.
type Forecaster struct {
	store *catalog.Store
}

func New(store *catalog.Store) *Forecaster {
	return &Forecaster{store: store}
}

type point struct {
	date  time.Time
	price float64
	row   catalog.PriceRow
}

// Forecast returns the coerced history and 7 daily projections following
// the latest observed date. Rows with unparsable price or date are
// dropped. Fewer than 2 usable points reports ErrNotEnoughData.
func (f *Forecaster) Forecast(materialID string) (*domain.ForecastResult, error) {
	rows, err := f.store.PriceHistory(materialID)
	if err != nil {
		return nil, err
	}

	points := make([]point, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		price, perr := parsePrice(row.Price)
		date, derr := parseDate(row.Date)
		if perr != nil || derr != nil {
			dropped++
			continue
		}
		points = append(points, point{date: date, price: price, row: row})
	}
	if dropped > 0 {
		log.Debug().Str("material_id", materialID).Int("dropped", dropped).Msg("dropped unparsable price rows")
	}

	if len(points) < 2 {
		return nil, domain.ErrNotEnoughData
	}

	minDate, maxDate := points[0].date, points[0].date
	for _, p := range points[1:] {
		if p.date.Before(minDate) {
			minDate = p.date
		}
		if p.date.After(maxDate) {
			maxDate = p.date
		}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = daysBetween(minDate, p.date)
		ys[i] = p.price
	}

	slope, intercept := fitLine(xs, ys)
	band := populationStdDev(ys)
	lastOffset := daysBetween(minDate, maxDate)

	projections := make([]domain.Projection, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		predicted := round2(intercept + slope*(lastOffset+float64(i)))
		projections = append(projections, domain.Projection{
			Date:           maxDate.AddDate(0, 0, i).Format(dateFormat),
			PredictedPrice: predicted,
			ConfidenceLow:  round2(predicted - band),
			ConfidenceHigh: round2(predicted + band),
		})
	}

	historical := make([]domain.PricePoint, 0, len(points))
	for _, p := range points {
		historical = append(historical, domain.PricePoint{
			MaterialID: p.row.MaterialID,
			Date:       p.date.Format(dateFormat),
			Price:      p.price,
			VendorID:   p.row.VendorID,
		})
	}

	return &domain.ForecastResult{
		MaterialID:  materialID,
		Historical:  historical,
		Projections: projections,
		DroppedRows: dropped,
	}, nil
}

// fitLine computes the ordinary least-squares fit y = intercept + slope*x.
// A degenerate x spread fits a flat line through the mean.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return 0, meanY
	}
	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept
}

// populationStdDev is the population (not sample) standard deviation.
func populationStdDev(ys []float64) float64 {
	n := float64(len(ys))
	var mean float64
	for _, y := range ys {
		mean += y
	}
	mean /= n

	var ss float64
	for _, y := range ys {
		d := y - mean
		ss += d * d
	}
	return math.Sqrt(ss / n)
}

// parsePrice rejects NaN and infinities, which ParseFloat would accept.
// Spreadsheet exports write missing prices as the literal NaN and those
// rows are dropped, never fitted.
func parsePrice(value string) (float64, error) {
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("non-finite price %q", value)
	}
	return price, nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func daysBetween(from, to time.Time) float64 {
	return math.Round(to.Sub(from).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
