package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
)

func newTestManager() *Manager {
	return NewManager(common.NewSilentLogger())
}

func TestSystemKV(t *testing.T) {
	mgr := newTestManager()
	ctx := context.Background()

	if _, err := mgr.GetSystemKV(ctx, "admin_seeded"); err == nil {
		t.Error("expected error for missing key")
	}

	if err := mgr.SetSystemKV(ctx, "admin_seeded", "true"); err != nil {
		t.Fatalf("SetSystemKV failed: %v", err)
	}

	value, err := mgr.GetSystemKV(ctx, "admin_seeded")
	if err != nil {
		t.Fatalf("GetSystemKV failed: %v", err)
	}
	if value != "true" {
		t.Errorf("expected 'true', got %q", value)
	}
}

func TestUserStoreCopySemantics(t *testing.T) {
	mgr := newTestManager()
	store := mgr.UserStore()
	ctx := context.Background()

	user := &models.User{ID: "user_1", Email: "one@test.local", Role: models.UserRoleInvestor}
	if err := store.Save(ctx, user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating a returned copy must not leak back into the store
	got, err := store.Get(ctx, "user_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got.Role = models.UserRoleAdmin

	fresh, err := store.Get(ctx, "user_1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fresh.Role != models.UserRoleInvestor {
		t.Errorf("store mutated through returned pointer: role = %q", fresh.Role)
	}

	byEmail, err := store.GetByEmail(ctx, "one@test.local")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != "user_1" {
		t.Errorf("expected user_1, got %s", byEmail.ID)
	}

	if _, err := store.GetByEmail(ctx, "missing@test.local"); err == nil {
		t.Error("expected error for unknown email")
	}
}

func seedTestProperties(t *testing.T, store interfaces.PropertyStore, count int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		status := models.PropertyStatusOpen
		if i%2 == 1 {
			status = models.PropertyStatusFunding
		}
		err := store.Save(context.Background(), &models.Property{
			ID:        fmt.Sprintf("prop_%02d", i),
			Title:     fmt.Sprintf("Listing %d", i),
			Price:     float64(1000000 + i*100000),
			Status:    status,
			Type:      models.PropertyTypeCommercial,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
}

func TestPropertyListFilterSortPaginate(t *testing.T) {
	mgr := newTestManager()
	store := mgr.PropertyStore()
	ctx := context.Background()

	seedTestProperties(t, store, 7)

	items, total, err := store.List(ctx, interfaces.PropertyListOptions{
		Status: models.PropertyStatusOpen,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 4 {
		t.Errorf("expected 4 open properties, got %d", total)
	}
	for _, p := range items {
		if p.Status != models.PropertyStatusOpen {
			t.Errorf("unexpected status %q in filtered list", p.Status)
		}
	}

	// Default sort is newest first
	items, _, err = store.List(ctx, interfaces.PropertyListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if items[0].ID != "prop_06" {
		t.Errorf("expected prop_06 first, got %s", items[0].ID)
	}

	// Price ascending
	items, _, err = store.List(ctx, interfaces.PropertyListOptions{Sort: "price_asc"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Price < items[i-1].Price {
			t.Errorf("price_asc out of order at index %d", i)
		}
	}

	// Pagination window
	items, total, err = store.List(ctx, interfaces.PropertyListOptions{Page: 2, PerPage: 3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items on page 2, got %d", len(items))
	}

	// Page past the end is empty, total unchanged
	items, total, err = store.List(ctx, interfaces.PropertyListOptions{Page: 5, PerPage: 3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 || total != 7 {
		t.Errorf("expected empty page with total 7, got %d items, total %d", len(items), total)
	}
}

func TestPropertyGetBatchMissing(t *testing.T) {
	mgr := newTestManager()
	store := mgr.PropertyStore()
	ctx := context.Background()

	seedTestProperties(t, store, 2)

	batch, err := store.GetBatch(ctx, []string{"prop_00", "prop_01"})
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if len(batch) != 2 {
		t.Errorf("expected 2 properties, got %d", len(batch))
	}

	if _, err := store.GetBatch(ctx, []string{"prop_00", "prop_99"}); err == nil {
		t.Error("expected error for missing ID in batch")
	}
}

func TestLeadListAndStats(t *testing.T) {
	mgr := newTestManager()
	store := mgr.LeadStore()
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	statuses := []string{
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusNew,
	}
	for i, status := range statuses {
		err := store.Save(ctx, &models.Lead{
			ID:        fmt.Sprintf("lead_%d", i),
			Name:      fmt.Sprintf("Lead %d", i),
			Email:     fmt.Sprintf("l%d@test.local", i),
			Source:    "schedule-call",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	since := base.Add(36 * time.Hour)
	items, total, err := store.List(ctx, interfaces.LeadListOptions{Since: &since})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || items[0].ID != "lead_2" {
		t.Errorf("expected only lead_2 after cutoff, got total %d", total)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 || stats.New != 2 || stats.Contacted != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestInsightListTagFilter(t *testing.T) {
	mgr := newTestManager()
	store := mgr.InsightStore()
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, tags := range [][]string{{"market"}, {"market", "tax"}, {"tax"}} {
		err := store.Save(ctx, &models.InsightPost{
			ID:        fmt.Sprintf("post_%d", i),
			Title:     fmt.Sprintf("Post %d", i),
			Content:   "Content.",
			Author:    "Desk",
			Tags:      tags,
			Status:    models.InsightStatusPublished,
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	_, total, err := store.List(ctx, interfaces.InsightListOptions{Tag: "tax"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 tagged posts, got %d", total)
	}
}

func TestRoiStoreState(t *testing.T) {
	mgr := newTestManager()
	store := mgr.RoiStore()
	ctx := context.Background()

	if _, err := store.GetSettings(ctx); err == nil {
		t.Error("expected error before settings saved")
	}

	settings := &models.RoiSettings{DefaultInvestment: 2500000, RentalYield: 0.09, HoldingPeriod: 5}
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// Saved copy is detached from the caller's struct
	settings.HoldingPeriod = 99
	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.HoldingPeriod != 5 {
		t.Errorf("expected holding period 5, got %d", got.HoldingPeriod)
	}

	for _, id := range []string{"scenario_b", "scenario_a"} {
		if err := store.SaveScenario(ctx, &models.RoiScenario{ID: id, Name: id}); err != nil {
			t.Fatalf("SaveScenario failed: %v", err)
		}
	}
	scenarios, err := store.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("ListScenarios failed: %v", err)
	}
	if len(scenarios) != 2 || scenarios[0].ID != "scenario_a" {
		t.Errorf("expected ID-ordered scenarios, got %+v", scenarios)
	}

	if err := store.DeleteScenario(ctx, "scenario_a"); err != nil {
		t.Fatalf("DeleteScenario failed: %v", err)
	}
	if _, err := store.GetScenario(ctx, "scenario_a"); err == nil {
		t.Error("expected error after delete")
	}
}
