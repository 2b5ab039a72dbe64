package models

import "time"

// InsightPost is a CMS article on the public insights section.
// PublishedAt is nil while the post is in draft.
type InsightPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	HeroImage   string     `json:"hero_image,omitempty"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Insight post status constants.
const (
	InsightStatusDraft     = "draft"
	InsightStatusPublished = "published"
)

// ValidInsightStatuses is the set of allowed status values.
var ValidInsightStatuses = map[string]bool{
	InsightStatusDraft:     true,
	InsightStatusPublished: true,
}
