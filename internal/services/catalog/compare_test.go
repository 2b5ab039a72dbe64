package catalog

import (
	"context"
	"testing"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/models"
	"github.com/truassets/truassets-server/internal/storage/memory"
)

func props(prices []float64, returns []float64) []*models.Property {
	items := make([]*models.Property, len(prices))
	for i := range prices {
		items[i] = &models.Property{
			ID:             string(rune('a' + i)),
			Price:          prices[i],
			ExpectedReturn: returns[i],
		}
	}
	return items
}

func TestAggregateExtrema(t *testing.T) {
	extrema := Aggregate(props([]float64{100, 50, 75}, []float64{8, 12, 10}))
	if extrema.LowestPrice != 50 {
		t.Errorf("LowestPrice = %v, want 50", extrema.LowestPrice)
	}
	if extrema.BestReturn != 12 {
		t.Errorf("BestReturn = %v, want 12", extrema.BestReturn)
	}
}

func TestAggregateEmpty(t *testing.T) {
	extrema := Aggregate(nil)
	if extrema.LowestPrice != 0 || extrema.BestReturn != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zeros", extrema)
	}
}

func TestAggregatePercentageUnits(t *testing.T) {
	// Expected returns are raw percentage values; 12 beats 0.15 because no
	// unit conversion is applied.
	extrema := Aggregate(props([]float64{100, 100}, []float64{12, 0.15}))
	if extrema.BestReturn != 12 {
		t.Errorf("BestReturn = %v, want 12", extrema.BestReturn)
	}
}

func TestBuildComparisonHighlights(t *testing.T) {
	c := BuildComparison(props([]float64{100, 50, 75}, []float64{8, 12, 10}))

	wantBestPrice := []bool{false, true, false}
	wantBestReturn := []bool{false, true, false}
	for i, entry := range c.Entries {
		if entry.BestPrice != wantBestPrice[i] {
			t.Errorf("entry %d BestPrice = %v, want %v", i, entry.BestPrice, wantBestPrice[i])
		}
		if entry.BestReturn != wantBestReturn[i] {
			t.Errorf("entry %d BestReturn = %v, want %v", i, entry.BestReturn, wantBestReturn[i])
		}
	}
}

func TestBuildComparisonTiedValuesAllHighlight(t *testing.T) {
	c := BuildComparison(props([]float64{50, 50, 75}, []float64{12, 8, 12}))

	if !c.Entries[0].BestPrice || !c.Entries[1].BestPrice {
		t.Error("tied lowest prices should both highlight")
	}
	if !c.Entries[0].BestReturn || !c.Entries[2].BestReturn {
		t.Error("tied best returns should both highlight")
	}
}

func TestRemainingUnits(t *testing.T) {
	cases := []struct {
		name     string
		property models.Property
		want     int
	}{
		{"basic", models.Property{Price: 100, TargetAmount: 1000, Investors: 3}, 7},
		{"floored at zero", models.Property{Price: 100, TargetAmount: 500, Investors: 9}, 0},
		{"fractional units truncate", models.Property{Price: 300, TargetAmount: 1000, Investors: 1}, 2},
		{"zero price", models.Property{Price: 0, TargetAmount: 1000, Investors: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.property.RemainingUnits(); got != tc.want {
				t.Errorf("RemainingUnits() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestServiceCompareCardinality(t *testing.T) {
	storage := memory.NewManager(common.NewSilentLogger())
	svc := NewService(storage, common.NewSilentLogger())
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		p := &models.Property{
			Title:        "Tower " + string(rune('A'+i)),
			Location:     "Bengaluru",
			Price:        float64(100000 * (i + 1)),
			TargetAmount: 1000000,
		}
		if err := svc.SaveProperty(ctx, p); err != nil {
			t.Fatalf("SaveProperty() error: %v", err)
		}
		ids = append(ids, p.ID)
	}

	if _, err := svc.Compare(ctx, ids[:1]); err == nil {
		t.Error("Compare() with 1 id should fail")
	}
	if _, err := svc.Compare(ctx, ids); err == nil {
		t.Error("Compare() with 5 ids should fail")
	}
	if _, err := svc.Compare(ctx, []string{ids[0], ids[0]}); err == nil {
		t.Error("Compare() with duplicate ids should fail")
	}

	c, err := svc.Compare(ctx, ids[:3])
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	if len(c.Entries) != 3 {
		t.Errorf("len(Entries) = %d, want 3", len(c.Entries))
	}
	if c.Extrema.LowestPrice != 100000 {
		t.Errorf("LowestPrice = %v, want 100000", c.Extrema.LowestPrice)
	}
}

func TestServiceCompareUnknownProperty(t *testing.T) {
	storage := memory.NewManager(common.NewSilentLogger())
	svc := NewService(storage, common.NewSilentLogger())

	if _, err := svc.Compare(context.Background(), []string{"missing-1", "missing-2"}); err == nil {
		t.Error("Compare() with unknown ids should fail")
	}
}

func TestSavePropertyValidation(t *testing.T) {
	storage := memory.NewManager(common.NewSilentLogger())
	svc := NewService(storage, common.NewSilentLogger())
	ctx := context.Background()

	cases := []struct {
		name     string
		property models.Property
	}{
		{"missing title", models.Property{Location: "Pune", Price: 100, TargetAmount: 1000}},
		{"missing location", models.Property{Title: "Tower", Price: 100, TargetAmount: 1000}},
		{"zero price", models.Property{Title: "Tower", Location: "Pune", TargetAmount: 1000}},
		{"bad status", models.Property{Title: "Tower", Location: "Pune", Price: 100, TargetAmount: 1000, Status: "sold"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.property
			if err := svc.SaveProperty(ctx, &p); err == nil {
				t.Error("SaveProperty() error = nil, want error")
			}
		})
	}
}
