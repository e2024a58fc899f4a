// backend-go/internal/feasibility/evaluator.go
package feasibility

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/procuresmart/backend-go/internal/catalog"
	"github.com/procuresmart/backend-go/internal/domain"
	"github.com/procuresmart/backend-go/internal/ranking"
	"github.com/procuresmart/backend-go/internal/reminder"
)

const dateFormat = "2006-01-02"

// reminders fire this many days ahead of the deadline
const reminderLeadDays = 2

// Evaluator decides whether any vendor can satisfy a requirement before
// its deadline and schedules a reminder for accepted requirements.
type Evaluator struct {
	store *catalog.Store
	queue *reminder.Queue
}

func New(store *catalog.Store, queue *reminder.Queue) *Evaluator {
	return &Evaluator{store: store, queue: queue}
}

// Evaluate returns a tagged outcome for the requirement as of today.
// Feasible outcomes pick the most reliable in-time vendor (ties broken
// by smallest vendor id) and enqueue a reminder when the reminder date
// has not yet passed.
func (e *Evaluator) Evaluate(req domain.Requirement, today time.Time) (*domain.EvaluationOutcome, error) {
	if req.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}

	today = truncateToDay(today)
	deadline := truncateToDay(req.Deadline)
	daysToDeadline := int(deadline.Sub(today).Hours() / 24)

	outcome := &domain.EvaluationOutcome{
		MaterialID:     req.MaterialID,
		Quantity:       req.Quantity,
		Deadline:       deadline.Format(dateFormat),
		DaysToDeadline: daysToDeadline,
	}

	if deadline.Before(today) {
		outcome.Status = domain.StatusInvalidDeadline
		outcome.Title = "Invalid Deadline"
		outcome.Message = "The deadline has already passed."
		outcome.Details = fmt.Sprintf("Deadline %s is before today %s.",
			deadline.Format(dateFormat), today.Format(dateFormat))
		return outcome, nil
	}

	rows, err := e.store.VendorOffers(req.MaterialID)
	if err != nil {
		return nil, err
	}
	offers, dropped := ranking.CoerceOffers(rows)
	if dropped > 0 {
		log.Debug().Str("material_id", req.MaterialID).Int("dropped", dropped).Msg("dropped unparsable vendor rows")
	}

	if len(offers) == 0 {
		outcome.Status = domain.StatusNoSuppliers
		outcome.Title = "No Suppliers Found"
		outcome.Message = fmt.Sprintf("No vendor offers exist for material %s.", req.MaterialID)
		outcome.Details = "Add vendor records for this material and evaluate again."
		return outcome, nil
	}

	var inTime []domain.VendorOffer
	for _, o := range offers {
		if o.DeliveryDays <= float64(daysToDeadline) {
			inTime = append(inTime, o)
		}
	}

	if len(inTime) == 0 {
		fastest := offers[0]
		for _, o := range offers[1:] {
			if o.DeliveryDays < fastest.DeliveryDays ||
				(o.DeliveryDays == fastest.DeliveryDays && o.VendorID < fastest.VendorID) {
				fastest = o
			}
		}
		outcome.Status = domain.StatusDeadlineUnmet
		outcome.Vendor = &fastest
		outcome.TotalPrice = totalPrice(req.Quantity, fastest.PricePerUnit)
		outcome.Title = "Deadline Cannot Be Met"
		outcome.Message = fmt.Sprintf("The fastest vendor %s needs %.0f days but only %d remain.",
			fastest.VendorID, fastest.DeliveryDays, daysToDeadline)
		outcome.Details = fmt.Sprintf("Fastest available option: %s at %.2f per unit, total %.2f for %d units.",
			fastest.VendorID, fastest.PricePerUnit, outcome.TotalPrice, req.Quantity)
		return outcome, nil
	}

	best := inTime[0]
	for _, o := range inTime[1:] {
		if o.ReliabilityScore > best.ReliabilityScore ||
			(o.ReliabilityScore == best.ReliabilityScore && o.VendorID < best.VendorID) {
			best = o
		}
	}

	outcome.Status = domain.StatusFeasible
	outcome.IsFeasible = true
	outcome.Vendor = &best
	outcome.TotalPrice = totalPrice(req.Quantity, best.PricePerUnit)
	outcome.Title = "Procurement Feasible"
	outcome.Message = fmt.Sprintf("Vendor %s can deliver in %.0f days, within the %d-day window.",
		best.VendorID, best.DeliveryDays, daysToDeadline)
	outcome.Details = fmt.Sprintf("Total %.2f for %d units at %.2f per unit (reliability %.1f/5).",
		outcome.TotalPrice, req.Quantity, best.PricePerUnit, best.ReliabilityScore)

	reminderDate := deadline.AddDate(0, 0, -reminderLeadDays)
	if !reminderDate.Before(today) {
		r := domain.Reminder{
			ID:             uuid.NewString(),
			MaterialID:     req.MaterialID,
			Quantity:       req.Quantity,
			Deadline:       deadline,
			ReminderDate:   reminderDate,
			AssignedVendor: best.VendorID,
		}
		e.queue.Enqueue(r)
		outcome.ReminderSet = true
		outcome.ReminderDate = reminderDate.Format(dateFormat)
		log.Info().
			Str("reminder_id", r.ID).
			Str("material_id", r.MaterialID).
			Str("vendor_id", r.AssignedVendor).
			Str("reminder_date", outcome.ReminderDate).
			Msg("reminder scheduled")
	}

	return outcome, nil
}

// totalPrice multiplies with decimals so money does not drift.
func totalPrice(quantity int64, pricePerUnit float64) float64 {
	total := decimal.NewFromFloat(pricePerUnit).Mul(decimal.NewFromInt(quantity))
	v, _ := total.Round(2).Float64()
	return v
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
