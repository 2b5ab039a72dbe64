package models

import "time"

// Property is a listed investment opportunity. ExpectedReturn is stored in
// percentage units (12 means 12%), unlike the fractional rates in
// AssumptionSet. The comparison aggregator operates on the raw value.
type Property struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Price          float64   `json:"price"`
	TargetAmount   float64   `json:"target_amount"`
	RaisedAmount   float64   `json:"raised_amount"`
	ExpectedReturn float64   `json:"expected_return"`
	Tenure         string    `json:"tenure"`
	Investors      int       `json:"investors"`
	Status         string    `json:"status"`
	Type           string    `json:"type"`
	Amenities      []string  `json:"amenities"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RemainingUnits is the number of unclaimed ticket-sized units in the raise,
// floored at zero. Returns 0 when price is not positive.
func (p Property) RemainingUnits() int {
	if p.Price <= 0 {
		return 0
	}
	units := int(p.TargetAmount/p.Price) - p.Investors
	if units < 0 {
		return 0
	}
	return units
}

// ComparisonExtrema holds the per-metric winners over a selection of
// properties.
type ComparisonExtrema struct {
	LowestPrice float64 `json:"lowest_price"`
	BestReturn  float64 `json:"best_return"`
}

// ComparisonEntry is one column of a comparison result.
type ComparisonEntry struct {
	Property       Property `json:"property"`
	RemainingUnits int      `json:"remaining_units"`
	BestPrice      bool     `json:"best_price"`
	BestReturn     bool     `json:"best_return"`
}

// Comparison is a side-by-side view over 2 to 4 selected properties.
type Comparison struct {
	Entries []ComparisonEntry `json:"entries"`
	Extrema ComparisonExtrema `json:"extrema"`
}

// Property status constants.
const (
	PropertyStatusOpen    = "open"
	PropertyStatusFunding = "funding"
	PropertyStatusFunded  = "funded"
	PropertyStatusExited  = "exited"
)

// Property type constants.
const (
	PropertyTypeCommercial  = "commercial"
	PropertyTypeResidential = "residential"
	PropertyTypeWarehouse   = "warehouse"
	PropertyTypeRetail      = "retail"
)

// ValidPropertyStatuses is the set of allowed status values.
var ValidPropertyStatuses = map[string]bool{
	PropertyStatusOpen:    true,
	PropertyStatusFunding: true,
	PropertyStatusFunded:  true,
	PropertyStatusExited:  true,
}

// ValidPropertyTypes is the set of allowed type values.
var ValidPropertyTypes = map[string]bool{
	PropertyTypeCommercial:  true,
	PropertyTypeResidential: true,
	PropertyTypeWarehouse:   true,
	PropertyTypeRetail:      true,
}
