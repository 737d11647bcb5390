// Package analytics aggregates job application records into summary statistics.
package analytics

import (
	"math"

	"jobtracker/internal/models"
)

// monthLabelLayout renders a date as a "Mon YYYY" bucket key, e.g. "Jan 2024".
const monthLabelLayout = "Jan 2006"

// successStatuses are the status values counted as a positive outcome.
// Matching is exact and case-sensitive.
var successStatuses = map[string]struct{}{
	models.StatusOffer:     {},
	models.StatusAccepted:  {},
	models.StatusInterview: {},
}

// IsSuccessStatus reports whether status counts toward the success rate.
func IsSuccessStatus(status string) bool {
	_, ok := successStatuses[status]
	return ok
}

// MonthLabel parses an ISO calendar date and returns its monthly bucket label.
// Anything other than a valid YYYY-MM-DD string returns false.
func MonthLabel(appliedAt string) (string, bool) {
	d, err := models.ParseDate(appliedAt)
	if err != nil {
		return "", false
	}
	return d.Format(monthLabelLayout), true
}

// Summarize computes status, company and monthly distributions plus the success
// rate for records. It never fails and does not retain or modify its input.
func Summarize(records []models.AnalyticsRecord) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		StatusCounts:  map[string]int{},
		CompanyCounts: map[string]int{},
		MonthlyData:   map[string]int{},
	}
	if len(records) == 0 {
		return summary
	}

	for _, rec := range records {
		if rec.Status != nil {
			summary.StatusCounts[*rec.Status]++
			if IsSuccessStatus(*rec.Status) {
				summary.SuccessCount++
			}
		}
		if rec.Company != nil {
			summary.CompanyCounts[*rec.Company]++
		}
		if rec.AppliedAt != nil {
			// Unparsable dates only drop out of the monthly buckets.
			if label, ok := MonthLabel(*rec.AppliedAt); ok {
				summary.MonthlyData[label]++
			}
		}
	}

	summary.TotalApplications = len(records)
	summary.SuccessRate = SuccessRate(summary.SuccessCount, summary.TotalApplications)
	return summary
}

// SuccessRate returns successes as a percentage of total rounded to one decimal
// place, half away from zero. A zero total yields 0.
func SuccessRate(successes, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(successes) / float64(total) * 100
	return math.Round(rate*10) / 10
}

// SummarizeApplications summarizes stored applications.
func SummarizeApplications(apps []models.JobApplication) models.AnalyticsSummary {
	records := make([]models.AnalyticsRecord, 0, len(apps))
	for i := range apps {
		records = append(records, apps[i].AnalyticsRecord())
	}
	return Summarize(records)
}
