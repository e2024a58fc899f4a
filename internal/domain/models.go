// backend-go/internal/domain/models.go
package domain

import "time"

// Material represents a purchasable material
type Material struct {
	MaterialID string `json:"material_id"`
	Name       string `json:"name"`
}

// PricePoint represents a single historical price observation for a material
type PricePoint struct {
	MaterialID string  `json:"material_id"`
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	VendorID   string  `json:"vendor_id,omitempty"`
}

// VendorOffer represents the terms a vendor offers for a material
type VendorOffer struct {
	MaterialID       string  `json:"material_id"`
	VendorID         string  `json:"vendor_id"`
	ReliabilityScore float64 `json:"reliability_score"`
	DeliveryDays     float64 `json:"delivery_days"`
	PricePerUnit     float64 `json:"price_per_unit"`
}

// Projection represents a forecasted price for a single future day
type Projection struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predicted_price"`
	ConfidenceLow  float64 `json:"confidence_low"`
	ConfidenceHigh float64 `json:"confidence_high"`
}

// ForecastResult bundles the historical series used for fitting with the projections
type ForecastResult struct {
	MaterialID  string       `json:"material_id"`
	Historical  []PricePoint `json:"historical_data"`
	Projections []Projection `json:"predictions"`
	DroppedRows int          `json:"-"`
}

// Weights are the caller-supplied criterion weights for vendor ranking
type Weights struct {
	Price       float64 `json:"price"`
	Delivery    float64 `json:"delivery"`
	Reliability float64 `json:"reliability"`
}

// RankedVendor is a vendor offer annotated with its normalized criteria and score
type RankedVendor struct {
	VendorOffer
	ReliabilityNorm float64 `json:"reliability_norm"`
	DeliveryNorm    float64 `json:"delivery_norm"`
	PriceNorm       float64 `json:"price_norm"`
	FinalScore      float64 `json:"final_score"`
}

// ScoreBreakdown holds the weighted score components of the best vendor
type ScoreBreakdown struct {
	Reliability float64 `json:"reliability"`
	Delivery    float64 `json:"delivery"`
	Price       float64 `json:"price"`
}

// Recommendation is the outcome of ranking all vendors for a material
type Recommendation struct {
	MaterialID    string         `json:"material_id"`
	BestVendor    RankedVendor   `json:"best_vendor"`
	AllVendors    []RankedVendor `json:"all_vendors"`
	WeightedScore float64        `json:"weighted_score"`
	Breakdown     ScoreBreakdown `json:"score_breakdown"`
	DroppedRows   int            `json:"-"`
}

// Requirement is a transient procurement request to evaluate
type Requirement struct {
	MaterialID string
	Quantity   int64
	Deadline   time.Time
}

// FeasibilityStatus tags the outcome of a feasibility evaluation
type FeasibilityStatus string

const (
	StatusInvalidDeadline FeasibilityStatus = "invalid_deadline"
	StatusNoSuppliers     FeasibilityStatus = "no_suppliers"
	StatusDeadlineUnmet   FeasibilityStatus = "deadline_unmet"
	StatusFeasible        FeasibilityStatus = "feasible"
)

// EvaluationOutcome is the structured result of a feasibility evaluation
type EvaluationOutcome struct {
	Status         FeasibilityStatus `json:"status"`
	IsFeasible     bool              `json:"is_feasible"`
	MaterialID     string            `json:"material_id"`
	Quantity       int64             `json:"quantity"`
	Deadline       string            `json:"deadline"`
	DaysToDeadline int               `json:"days_to_deadline"`
	Vendor         *VendorOffer      `json:"vendor,omitempty"`
	TotalPrice     float64           `json:"total_price,omitempty"`
	ReminderSet    bool              `json:"reminder_set"`
	ReminderDate   string            `json:"reminder_date,omitempty"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Details        string            `json:"details"`
}

// Reminder is a scheduled one-time alert for an accepted requirement
type Reminder struct {
	ID             string    `json:"id"`
	MaterialID     string    `json:"material_id"`
	Quantity       int64     `json:"quantity"`
	Deadline       time.Time `json:"deadline"`
	ReminderDate   time.Time `json:"reminder_date"`
	AssignedVendor string    `json:"assigned_vendor"`
}

// Alert is a due reminder surfaced to the caller
type Alert struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
