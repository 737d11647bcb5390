package models

import (
	"time"

	"github.com/google/uuid"
)

// Application status constants. Status is free-form text; these are the values
// the frontend offers.
const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// JobApplication is a single tracked job application.
type JobApplication struct {
	ID                 uuid.UUID `json:"id"`
	Company            string    `json:"company"`
	Role               string    `json:"role"`
	Status             string    `json:"status"`
	AppliedDate        *Date     `json:"applied_date"`
	Notes              string    `json:"notes"`
	ProjectName        string    `json:"project_name"`
	ProjectTitle       string    `json:"project_title"`
	ProjectURL         string    `json:"project_url"`
	ProjectDescription string    `json:"project_description"`
	StartDate          *Date     `json:"start_date"`
	EndDate            *Date     `json:"end_date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AnalyticsRecord converts the stored application into an aggregation input.
func (a *JobApplication) AnalyticsRecord() AnalyticsRecord {
	status := a.Status
	company := a.Company
	rec := AnalyticsRecord{Status: &status, Company: &company}
	if a.AppliedDate != nil {
		applied := a.AppliedDate.String()
		rec.AppliedAt = &applied
	}
	return rec
}

// ApplicationFilter narrows an application listing. Zero values mean "no filter".
type ApplicationFilter struct {
	Status       string // exact match
	Company      string // case-insensitive substring
	Role         string // case-insensitive substring
	AppliedAfter *Date  // exclusive
	From         *Date  // inclusive, used together with To
	To           *Date  // inclusive
	WithProjects bool
}
