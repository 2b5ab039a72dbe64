package models

// AssumptionSet is the input to a projection run. All rate fields are
// fractions (0.09 means 9%), never percentages.
type AssumptionSet struct {
	Investment    float64 `json:"investment"`
	RentalYield   float64 `json:"rental_yield"`
	Appreciation  float64 `json:"appreciation"`
	HoldingPeriod int     `json:"holding_period"`
	RentGrowth    float64 `json:"rent_growth"`
	ExpenseRatio  float64 `json:"expense_ratio"`
	ExitCosts     float64 `json:"exit_costs"`
}

// YearRecord is one row of the projection schedule. CumulativeCashFlow for
// the final year includes sale proceeds; earlier years exclude them.
type YearRecord struct {
	Year               int     `json:"year"`
	GrossRent          float64 `json:"gross_rent"`
	NetRent            float64 `json:"net_rent"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// ProjectionSummary holds the terminal metrics of a projection run.
// PaybackYears is nil when cumulative cash flow never reaches zero
// before the sale.
type ProjectionSummary struct {
	NetProfit       float64 `json:"net_profit"`
	ROI             float64 `json:"roi"`
	CAGR            float64 `json:"cagr"`
	NetRentalIncome float64 `json:"net_rental_income"`
	SaleProceeds    float64 `json:"sale_proceeds"`
	PaybackYears    *int    `json:"payback_years"`
}

// Projection pairs the yearly schedule with its summary.
type Projection struct {
	Assumptions AssumptionSet     `json:"assumptions"`
	Yearly      []YearRecord      `json:"yearly_breakdown"`
	Summary     ProjectionSummary `json:"summary"`
}

// RoiSettings are the platform-wide default assumptions presented to
// calculator users.
type RoiSettings struct {
	DefaultInvestment float64 `json:"default_investment"`
	RentalYield       float64 `json:"rental_yield"`
	Appreciation      float64 `json:"appreciation"`
	HoldingPeriod     int     `json:"holding_period"`
	RentGrowth        float64 `json:"rent_growth"`
	ExpenseRatio      float64 `json:"expense_ratio"`
	ExitCosts         float64 `json:"exit_costs"`
}

// Assumptions converts settings into an AssumptionSet using the default
// investment amount.
func (s RoiSettings) Assumptions() AssumptionSet {
	return AssumptionSet{
		Investment:    s.DefaultInvestment,
		RentalYield:   s.RentalYield,
		Appreciation:  s.Appreciation,
		HoldingPeriod: s.HoldingPeriod,
		RentGrowth:    s.RentGrowth,
		ExpenseRatio:  s.ExpenseRatio,
		ExitCosts:     s.ExitCosts,
	}
}

// RoiScenario is a named delta applied additively to assumption fields.
type RoiScenario struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	RentalYieldDelta   float64 `json:"rental_yield_delta"`
	AppreciationDelta  float64 `json:"appreciation_delta"`
	HoldingPeriodDelta float64 `json:"holding_period_delta"`
	Notes              string  `json:"notes,omitempty"`
}

// DefaultRoiSettings returns the seeded calculator defaults.
func DefaultRoiSettings() RoiSettings {
	return RoiSettings{
		DefaultInvestment: 2500000,
		RentalYield:       0.09,
		Appreciation:      0.07,
		HoldingPeriod:     5,
		RentGrowth:        0.03,
		ExpenseRatio:      0.18,
		ExitCosts:         0.02,
	}
}

// DefaultRoiScenarios returns the seeded scenario presets.
func DefaultRoiScenarios() []RoiScenario {
	return []RoiScenario{
		{
			ID:                 "scenario-balanced",
			Name:               "Balanced Case",
			RentalYieldDelta:   0,
			AppreciationDelta:  0,
			HoldingPeriodDelta: 0,
			Notes:              "Baseline assumptions for stabilized Grade-A assets.",
		},
		{
			ID:                 "scenario-growth",
			Name:               "Growth Market",
			RentalYieldDelta:   -0.01,
			AppreciationDelta:  0.03,
			HoldingPeriodDelta: 1,
			Notes:              "Lower entry yield but higher appreciation in emerging corridors.",
		},
		{
			ID:                 "scenario-income",
			Name:               "Income Focus",
			RentalYieldDelta:   0.015,
			AppreciationDelta:  -0.02,
			HoldingPeriodDelta: -1,
			Notes:              "Stabilized assets with long WALE prioritising cash yield.",
		},
	}
}
