package roi

import (
	"context"
	"testing"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/models"
	"github.com/truassets/truassets-server/internal/storage/memory"
)

func newTestService() *Service {
	return NewService(memory.NewManager(common.NewSilentLogger()), common.NewSilentLogger())
}

func TestGetSettingsSeedsDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}

	want := models.DefaultRoiSettings()
	if *settings != want {
		t.Errorf("settings = %+v, want %+v", *settings, want)
	}

	// Seeded values persist
	again, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if *again != want {
		t.Errorf("second read = %+v, want %+v", *again, want)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	settings := models.DefaultRoiSettings()
	settings.DefaultInvestment = 0
	if err := svc.UpdateSettings(ctx, &settings); err == nil {
		t.Error("UpdateSettings() with zero investment should fail")
	}

	settings = models.DefaultRoiSettings()
	settings.ExpenseRatio = 1.2
	if err := svc.UpdateSettings(ctx, &settings); err == nil {
		t.Error("UpdateSettings() with expense ratio >= 1 should fail")
	}

	settings = models.DefaultRoiSettings()
	settings.RentalYield = 0.11
	if err := svc.UpdateSettings(ctx, &settings); err != nil {
		t.Fatalf("UpdateSettings() error: %v", err)
	}
	got, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if got.RentalYield != 0.11 {
		t.Errorf("rental yield = %v, want 0.11", got.RentalYield)
	}
}

func TestListScenariosSeedsPresets(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	scenarios, err := svc.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("ListScenarios() error: %v", err)
	}
	if len(scenarios) != 3 {
		t.Fatalf("len(scenarios) = %d, want 3", len(scenarios))
	}

	names := map[string]bool{}
	for _, sc := range scenarios {
		names[sc.Name] = true
	}
	for _, want := range []string{"Balanced Case", "Growth Market", "Income Focus"} {
		if !names[want] {
			t.Errorf("missing seeded scenario %q", want)
		}
	}
}

func TestScenarioCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	scenario := &models.RoiScenario{
		Name:             "Distressed Entry",
		RentalYieldDelta: 0.02,
	}
	if err := svc.AddScenario(ctx, scenario); err != nil {
		t.Fatalf("AddScenario() error: %v", err)
	}
	if scenario.ID == "" {
		t.Fatal("AddScenario() did not assign an ID")
	}

	scenario.Notes = "Entry at a discount to replacement cost."
	if err := svc.UpdateScenario(ctx, scenario); err != nil {
		t.Fatalf("UpdateScenario() error: %v", err)
	}

	missing := &models.RoiScenario{ID: "scenario-missing", Name: "Ghost"}
	if err := svc.UpdateScenario(ctx, missing); err == nil {
		t.Error("UpdateScenario() on unknown scenario should fail")
	}

	if err := svc.AddScenario(ctx, &models.RoiScenario{Name: ""}); err == nil {
		t.Error("AddScenario() without a name should fail")
	}

	if err := svc.DeleteScenario(ctx, scenario.ID); err != nil {
		t.Fatalf("DeleteScenario() error: %v", err)
	}
}

func TestProjectScenario(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Seed presets
	if _, err := svc.ListScenarios(ctx); err != nil {
		t.Fatalf("ListScenarios() error: %v", err)
	}

	base := models.DefaultRoiSettings().Assumptions()
	projection, err := svc.ProjectScenario(ctx, base, "scenario-growth")
	if err != nil {
		t.Fatalf("ProjectScenario() error: %v", err)
	}

	// Growth Market: yield -0.01, appreciation +0.03, holding +1
	if projection.Assumptions.RentalYield != 0.08 {
		t.Errorf("rental yield = %v, want 0.08", projection.Assumptions.RentalYield)
	}
	if projection.Assumptions.Appreciation != 0.1 {
		t.Errorf("appreciation = %v, want 0.1", projection.Assumptions.Appreciation)
	}
	if projection.Assumptions.HoldingPeriod != 6 {
		t.Errorf("holding period = %d, want 6", projection.Assumptions.HoldingPeriod)
	}
	if len(projection.Yearly) != 6 {
		t.Errorf("len(Yearly) = %d, want 6", len(projection.Yearly))
	}

	if _, err := svc.ProjectScenario(ctx, base, "scenario-missing"); err == nil {
		t.Error("ProjectScenario() with unknown scenario should fail")
	}
}

func TestRenderChart(t *testing.T) {
	svc := newTestService()

	projection, err := svc.Project(models.DefaultRoiSettings().Assumptions())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	png, err := svc.RenderChart(projection)
	if err != nil {
		t.Fatalf("RenderChart() error: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("RenderChart() returned empty bytes")
	}
	// PNG signature
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Error("RenderChart() did not return a PNG")
	}

	short := &models.Projection{Yearly: projection.Yearly[:1]}
	if _, err := svc.RenderChart(short); err == nil {
		t.Error("RenderChart() with one year should fail")
	}
}
