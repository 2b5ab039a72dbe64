// Package roi provides the investment projection engine, scenario
// transformer, and calculator configuration service.
package roi

import (
	"fmt"
	"math"

	"github.com/truassets/truassets-server/internal/models"
)

// Project computes a year-by-year cash-flow schedule and terminal summary
// metrics from a set of financial assumptions. Pure function: identical
// inputs always yield identical output.
//
// The final year's CumulativeCashFlow includes sale proceeds; earlier years
// exclude them. PaybackYears records the first year the pre-sale cumulative
// reaches zero and is never revised by the terminal sale adjustment.
func Project(a models.AssumptionSet) (*models.Projection, error) {
	if err := validateAssumptions(a); err != nil {
		return nil, err
	}

	grossRent := a.Investment * a.RentalYield
	netRentalIncome := 0.0
	cumulative := -a.Investment
	var paybackYears *int

	yearly := make([]models.YearRecord, 0, a.HoldingPeriod)

	for year := 1; year <= a.HoldingPeriod; year++ {
		netRent := grossRent * (1 - a.ExpenseRatio)
		netRentalIncome += netRent
		cumulative += netRent
		if paybackYears == nil && cumulative >= 0 {
			y := year
			paybackYears = &y
		}

		yearly = append(yearly, models.YearRecord{
			Year:               year,
			GrossRent:          grossRent,
			NetRent:            netRent,
			CumulativeCashFlow: cumulative,
		})

		grossRent *= 1 + a.RentGrowth
	}

	endingValue := a.Investment * math.Pow(1+a.Appreciation, float64(a.HoldingPeriod))
	exitCharges := endingValue * a.ExitCosts
	saleProceeds := endingValue - exitCharges
	totalReturn := saleProceeds + netRentalIncome
	netProfit := totalReturn - a.Investment
	roi := netProfit / a.Investment

	cagr := 0.0
	if totalReturn > 0 {
		cagr = math.Pow(totalReturn/a.Investment, 1/float64(a.HoldingPeriod)) - 1
	}

	// The terminal year's stored cumulative includes the sale.
	cumulative += saleProceeds
	yearly[len(yearly)-1].CumulativeCashFlow = cumulative

	return &models.Projection{
		Assumptions: a,
		Yearly:      yearly,
		Summary: models.ProjectionSummary{
			NetProfit:       netProfit,
			ROI:             roi,
			CAGR:            cagr,
			NetRentalIncome: netRentalIncome,
			SaleProceeds:    saleProceeds,
			PaybackYears:    paybackYears,
		},
	}, nil
}

// validateAssumptions rejects inputs that would produce a degenerate or
// non-finite projection.
func validateAssumptions(a models.AssumptionSet) error {
	if a.Investment <= 0 {
		return fmt.Errorf("investment must be positive, got %v", a.Investment)
	}
	if a.HoldingPeriod < 1 {
		return fmt.Errorf("holding period must be at least 1 year, got %d", a.HoldingPeriod)
	}
	for name, v := range map[string]float64{
		"investment":    a.Investment,
		"rental yield":  a.RentalYield,
		"appreciation":  a.Appreciation,
		"rent growth":   a.RentGrowth,
		"expense ratio": a.ExpenseRatio,
		"exit costs":    a.ExitCosts,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	return nil
}

// ApplyScenario returns a copy of base with the scenario's deltas applied.
// Rate adjustments are rounded to 3 decimal places; the holding period is
// rounded to the nearest year and floored at 1. Rates are not clamped, a
// large negative delta may drive them negative.
func ApplyScenario(base models.AssumptionSet, scenario models.RoiScenario) models.AssumptionSet {
	out := base
	out.RentalYield = roundTo(base.RentalYield+scenario.RentalYieldDelta, 3)
	out.Appreciation = roundTo(base.Appreciation+scenario.AppreciationDelta, 3)

	period := int(math.Round(float64(base.HoldingPeriod) + scenario.HoldingPeriodDelta))
	if period < 1 {
		period = 1
	}
	out.HoldingPeriod = period
	return out
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
