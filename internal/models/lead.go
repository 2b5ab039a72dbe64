package models

import "time"

// Lead is a captured prospect from the public site.
type Lead struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	InvestmentHorizon string    `json:"investment_horizon"`
	InvestmentGoal    string    `json:"investment_goal"`
	PreferredDate     string    `json:"preferred_date"`
	PreferredTime     string    `json:"preferred_time"`
	Notes             string    `json:"notes,omitempty"`
	Source            string    `json:"source"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LeadStats provides aggregate counts across the lead pipeline.
type LeadStats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Contacted  int `json:"contacted"`
	Converted  int `json:"converted"`
	Archived   int `json:"archived"`
}

// Lead status constants.
const (
	LeadStatusNew        = "new"
	LeadStatusInProgress = "in-progress"
	LeadStatusContacted  = "contacted"
	LeadStatusConverted  = "converted"
	LeadStatusArchived   = "archived"
)

// ValidLeadStatuses is the set of allowed status values.
var ValidLeadStatuses = map[string]bool{
	LeadStatusNew:        true,
	LeadStatusInProgress: true,
	LeadStatusContacted:  true,
	LeadStatusConverted:  true,
	LeadStatusArchived:   true,
}
