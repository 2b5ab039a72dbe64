package roi

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/truassets/truassets-server/internal/models"
)

// RenderChart renders a projection's cash-flow schedule as a PNG line chart.
// Two series: cumulative cash flow (green solid) and net rent per year
// (gray dashed). Returns raw PNG bytes.
func (s *Service) RenderChart(projection *models.Projection) ([]byte, error) {
	if projection == nil || len(projection.Yearly) < 2 {
		return nil, fmt.Errorf("need at least 2 projection years to chart")
	}

	xValues := make([]float64, len(projection.Yearly))
	cumulativeY := make([]float64, len(projection.Yearly))
	netRentY := make([]float64, len(projection.Yearly))

	for i, record := range projection.Yearly {
		xValues[i] = float64(record.Year)
		cumulativeY[i] = record.CumulativeCashFlow
		netRentY[i] = record.NetRent
	}

	cumulativeSeries := chart.ContinuousSeries{
		Name: "Cumulative Cash Flow",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: cumulativeY,
	}

	netRentSeries := chart.ContinuousSeries{
		Name: "Net Rent",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: netRentY,
	}

	graph := chart.Chart{
		Title:  "Projected Cash Flow",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Year %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1fL", f/100000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			cumulativeSeries,
			netRentSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
