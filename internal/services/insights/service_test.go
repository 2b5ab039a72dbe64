package insights

import (
	"context"
	"fmt"
	"testing"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/interfaces"
	"github.com/truassets/truassets-server/internal/models"
	"github.com/truassets/truassets-server/internal/storage/memory"
)

// mockGemini returns canned text without network access.
type mockGemini struct {
	response   string
	err        error
	configured bool
	prompts    []string
}

func (m *mockGemini) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockGemini) IsConfigured() bool { return m.configured }

var _ interfaces.GeminiClient = (*mockGemini)(nil)

func newTestService(gemini interfaces.GeminiClient) *Service {
	return NewService(memory.NewManager(common.NewSilentLogger()), gemini, common.NewSilentLogger())
}

func samplePost() *models.InsightPost {
	return &models.InsightPost{
		Title:   "Top Commercial Micro-Markets to Watch",
		Excerpt: "Office absorption is back.",
		Content: "Grade-A commercial supply remains constrained in key corridors.",
		Author:  "Research Desk",
		Tags:    []string{"Commercial"},
	}
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := newTestService(nil)
	post, err := svc.Create(context.Background(), samplePost())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if post.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if post.Status != models.InsightStatusDraft {
		t.Errorf("status = %q, want draft", post.Status)
	}
	if post.PublishedAt != nil {
		t.Error("PublishedAt should be nil for a draft")
	}
}

func TestCreatePublishedSetsTimestamp(t *testing.T) {
	svc := newTestService(nil)
	p := samplePost()
	p.Status = models.InsightStatusPublished

	post, err := svc.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if post.PublishedAt == nil {
		t.Error("PublishedAt should be set for a published post")
	}
}

func TestTogglePublish(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, samplePost())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	published, err := svc.TogglePublish(ctx, post.ID)
	if err != nil {
		t.Fatalf("TogglePublish() error: %v", err)
	}
	if published.Status != models.InsightStatusPublished {
		t.Errorf("status = %q, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Error("PublishedAt should be set after publishing")
	}

	reverted, err := svc.TogglePublish(ctx, post.ID)
	if err != nil {
		t.Fatalf("TogglePublish() error: %v", err)
	}
	if reverted.Status != models.InsightStatusDraft {
		t.Errorf("status = %q, want draft", reverted.Status)
	}
	if reverted.PublishedAt != nil {
		t.Error("PublishedAt should be cleared after reverting to draft")
	}
}

func TestListPublishedOnly(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	draft, err := svc.Create(ctx, samplePost())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	published := samplePost()
	published.Status = models.InsightStatusPublished
	if _, err := svc.Create(ctx, published); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	items, total, err := svc.List(ctx, interfaces.InsightListOptions{Status: models.InsightStatusPublished})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("List(published) = %d items, total %d, want 1/1", len(items), total)
	}
	if items[0].ID == draft.ID {
		t.Error("List(published) returned the draft post")
	}
}

func TestUpdateStatusMaintainsTimestamp(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, samplePost())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := svc.Update(ctx, post.ID, map[string]any{"status": models.InsightStatusPublished})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Error("PublishedAt should be set when status update publishes")
	}

	if _, err := svc.Update(ctx, post.ID, map[string]any{"status": "live"}); err == nil {
		t.Error("Update() with invalid status should fail")
	}
	if _, err := svc.Update(ctx, post.ID, map[string]any{"slug": "x"}); err == nil {
		t.Error("Update() with unknown field should fail")
	}
}

func TestDraftExcerpt(t *testing.T) {
	gemini := &mockGemini{response: "  A crisp summary of the market.  ", configured: true}
	svc := newTestService(gemini)

	excerpt, err := svc.DraftExcerpt(context.Background(), "Market Watch", "Lots of article text.")
	if err != nil {
		t.Fatalf("DraftExcerpt() error: %v", err)
	}
	if excerpt != "A crisp summary of the market." {
		t.Errorf("excerpt = %q", excerpt)
	}
	if len(gemini.prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(gemini.prompts))
	}
}

func TestDraftExcerptUnconfigured(t *testing.T) {
	svc := newTestService(nil)
	if _, err := svc.DraftExcerpt(context.Background(), "T", "content"); err == nil {
		t.Error("DraftExcerpt() without client should fail")
	}

	svc = newTestService(&mockGemini{configured: false})
	if _, err := svc.DraftExcerpt(context.Background(), "T", "content"); err == nil {
		t.Error("DraftExcerpt() with unconfigured client should fail")
	}
}

func TestDraftExcerptPropagatesError(t *testing.T) {
	gemini := &mockGemini{err: fmt.Errorf("quota exceeded"), configured: true}
	svc := newTestService(gemini)

	if _, err := svc.DraftExcerpt(context.Background(), "T", "content"); err == nil {
		t.Error("DraftExcerpt() should propagate generation errors")
	}
}
