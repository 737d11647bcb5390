package api

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"jobtracker/internal/models"
)

func TestAnalyticsProcess(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.AnalyticsSummary
	}{
		{
			name: "empty list",
			body: `{"applications": [], "userId": "u1"}`,
			want: models.AnalyticsSummary{
				StatusCounts:  map[string]int{},
				CompanyCounts: map[string]int{},
				MonthlyData:   map[string]int{},
			},
		},
		{
			name: "absent list",
			body: `{"userId": "u1"}`,
			want: models.AnalyticsSummary{
				StatusCounts:  map[string]int{},
				CompanyCounts: map[string]int{},
				MonthlyData:   map[string]int{},
			},
		},
		{
			name: "two applications",
			body: `{"userId": "u1", "applications": [
				{"status": "offer", "company": "Acme", "applied_at": "2024-01-15"},
				{"status": "rejected", "company": "Acme", "applied_at": "2024-02-20"}
			]}`,
			want: models.AnalyticsSummary{
				TotalApplications: 2,
				SuccessCount:      1,
				SuccessRate:       50.0,
				StatusCounts:      map[string]int{"offer": 1, "rejected": 1},
				CompanyCounts:     map[string]int{"Acme": 2},
				MonthlyData:       map[string]int{"Jan 2024": 1, "Feb 2024": 1},
			},
		},
		{
			name: "bad date and null status",
			body: `{"applications": [
				{"status": "interview", "applied_at": "not-a-date"},
				{"status": null, "company": "Globex", "extra": 42}
			]}`,
			want: models.AnalyticsSummary{
				TotalApplications: 2,
				SuccessCount:      1,
				SuccessRate:       50.0,
				StatusCounts:      map[string]int{"interview": 1},
				CompanyCounts:     map[string]int{"Globex": 1},
				MonthlyData:       map[string]int{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(newMemStore())

			code, env := doRequest(t, app, "POST", "/api/analytics/process", tt.body)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (error %q)", code, env.Error)
			}

			var got models.AnalyticsResponse
			decodeData(t, env, &got)

			if !reflect.DeepEqual(got.AnalyticsSummary, tt.want) {
				t.Errorf("summary = %+v, want %+v", got.AnalyticsSummary, tt.want)
			}
			if got.ProcessedBy != processedBy {
				t.Errorf("processedBy = %q, want %q", got.ProcessedBy, processedBy)
			}
			if !got.Timestamp.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
				t.Errorf("timestamp = %v", got.Timestamp)
			}
		})
	}
}

func TestAnalyticsProcess_EchoesUserID(t *testing.T) {
	app := newTestApp(newMemStore())

	_, env := doRequest(t, app, "POST", "/api/analytics/process", `{"userId": "user-123", "applications": []}`)
	var got models.AnalyticsResponse
	decodeData(t, env, &got)
	if got.UserID == nil || *got.UserID != "user-123" {
		t.Errorf("userId = %v, want user-123", got.UserID)
	}

	_, env = doRequest(t, app, "POST", "/api/analytics/process", `{"applications": []}`)
	got = models.AnalyticsResponse{}
	decodeData(t, env, &got)
	if got.UserID != nil {
		t.Errorf("userId = %q, want null", *got.UserID)
	}
}

func TestAnalyticsProcess_RejectsBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"applications": [`},
		{"applications not a list", `{"applications": "nope"}`},
		{"applications is an object", `{"applications": {"status": "offer"}}`},
		{"status not a string", `{"applications": [{"status": 3}]}`},
		{"empty body", ``},
		{"null record", `{"applications": [null, null]}`},
		{"null among records", `{"applications": [{"status": "offer"}, null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(newMemStore())
			code, env := doRequest(t, app, "POST", "/api/analytics/process", tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
			if env.Status != "error" || env.Error == "" {
				t.Errorf("envelope = %+v, want error", env)
			}
			if strings.Contains(env.Error, "Go value") || strings.Contains(env.Error, "models.") {
				t.Errorf("error %q exposes decoder internals", env.Error)
			}
		})
	}
}

func TestAnalyticsEnhancedStats(t *testing.T) {
	store := newMemStore()
	jan := models.NewDate(2024, 1, 15)
	for _, a := range []models.JobApplication{
		{Company: "Acme", Role: "Dev", Status: "offer", AppliedDate: &jan},
		{Company: "Acme", Role: "SRE", Status: "applied"},
		{Company: "Globex", Role: "Dev", Status: "interview"},
	} {
		a := a
		if err := store.CreateApplication(context.Background(), &a); err != nil {
			t.Fatal(err)
		}
	}
	app := newTestApp(store)

	code, env := doRequest(t, app, "GET", "/api/analytics/enhanced-stats", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	var got models.EnhancedStatsResponse
	decodeData(t, env, &got)

	if got.Version != apiVersion {
		t.Errorf("version = %q, want %q", got.Version, apiVersion)
	}
	s := got.Analytics
	if s.TotalApplications != 3 || s.SuccessCount != 2 || s.SuccessRate != 66.7 {
		t.Errorf("analytics = %+v", s)
	}
	if s.CompanyCounts["Acme"] != 2 || s.MonthlyData["Jan 2024"] != 1 {
		t.Errorf("analytics maps = %+v", s)
	}
}

func TestAnalyticsHealth(t *testing.T) {
	app := newTestApp(newMemStore())

	req, _ := http.NewRequest("GET", "/api/analytics/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
