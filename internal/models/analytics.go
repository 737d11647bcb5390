package models

import "time"

// AnalyticsRecord is one client-supplied application used as aggregation input.
// Nil fields are absent; an empty string is a present value.
type AnalyticsRecord struct {
	Status    *string `json:"status"`
	Company   *string `json:"company"`
	AppliedAt *string `json:"applied_at"`
}

// AnalyticsSummary is the aggregate computed over a list of AnalyticsRecords.
type AnalyticsSummary struct {
	TotalApplications int            `json:"totalApplications"`
	SuccessRate       float64        `json:"successRate"`
	SuccessCount      int            `json:"successCount"`
	StatusCounts      map[string]int `json:"statusCounts"`
	CompanyCounts     map[string]int `json:"companyCounts"`
	MonthlyData       map[string]int `json:"monthlyData"`
}

// AnalyticsRequest is the body accepted by the analytics process endpoint.
type AnalyticsRequest struct {
	Applications []*AnalyticsRecord `json:"applications"`
	UserID       *string            `json:"userId"`
}

// AnalyticsResponse is the summary plus metadata added by the HTTP layer.
type AnalyticsResponse struct {
	AnalyticsSummary
	ProcessedBy string    `json:"processedBy"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      *string   `json:"userId"`
}

// EnhancedStatsResponse is the summary over stored applications.
type EnhancedStatsResponse struct {
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Analytics AnalyticsSummary `json:"analytics"`
}
