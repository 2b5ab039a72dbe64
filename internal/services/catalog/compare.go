// Package catalog manages the property listing catalog and side-by-side
// comparisons.
package catalog

import (
	"github.com/truassets/truassets-server/internal/models"
)

// Aggregate computes per-metric winners over a selection of properties:
// the lowest price and the highest expected return. ExpectedReturn is
// compared in its stored percentage units. An empty selection yields zeros
// rather than an error, since a comparison may be requested before any
// selection exists.
func Aggregate(properties []*models.Property) models.ComparisonExtrema {
	extrema := models.ComparisonExtrema{}
	if len(properties) == 0 {
		return extrema
	}

	extrema.LowestPrice = properties[0].Price
	extrema.BestReturn = properties[0].ExpectedReturn
	for _, p := range properties[1:] {
		if p.Price < extrema.LowestPrice {
			extrema.LowestPrice = p.Price
		}
		if p.ExpectedReturn > extrema.BestReturn {
			extrema.BestReturn = p.ExpectedReturn
		}
	}
	return extrema
}

// BuildComparison assembles the full comparison view: extrema plus per-entry
// highlight flags and remaining-unit counts. Highlighting uses exact
// equality against the winning value, so tied entries all highlight.
func BuildComparison(properties []*models.Property) *models.Comparison {
	extrema := Aggregate(properties)

	entries := make([]models.ComparisonEntry, 0, len(properties))
	for _, p := range properties {
		entries = append(entries, models.ComparisonEntry{
			Property:       *p,
			RemainingUnits: p.RemainingUnits(),
			BestPrice:      p.Price == extrema.LowestPrice,
			BestReturn:     p.ExpectedReturn == extrema.BestReturn,
		})
	}

	return &models.Comparison{
		Entries: entries,
		Extrema: extrema,
	}
}
