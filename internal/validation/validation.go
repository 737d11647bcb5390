package validation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"jobtracker/internal/models"
)

// Column limits mirrored from the job_applications schema.
const (
	MaxCompanyLength = 200
	MaxRoleLength    = 200
	MaxStatusLength  = 50
	MaxNotesLength   = 2000
	MaxProjectLength = 200
)

// Errors maps a JSON field name to a human-readable validation message.
type Errors map[string]string

// Error implements the error interface with a stable, sorted message.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// Normalize trims surrounding whitespace from the application's text fields.
func Normalize(app *models.JobApplication) {
	app.Company = strings.TrimSpace(app.Company)
	app.Role = strings.TrimSpace(app.Role)
	app.Status = strings.TrimSpace(app.Status)
	app.Notes = strings.TrimSpace(app.Notes)
	app.ProjectName = strings.TrimSpace(app.ProjectName)
	app.ProjectTitle = strings.TrimSpace(app.ProjectTitle)
	app.ProjectURL = strings.TrimSpace(app.ProjectURL)
	app.ProjectDescription = strings.TrimSpace(app.ProjectDescription)
}

// Validator checks applications before they are persisted.
type Validator struct {
	// allowed is the status catalog; empty means any status is accepted.
	allowed map[string]struct{}
}

// NewValidator creates a validator. A nil or empty statuses list accepts any
// status value within the length limit.
func NewValidator(statuses []string) *Validator {
	v := &Validator{}
	if len(statuses) > 0 {
		v.allowed = make(map[string]struct{}, len(statuses))
		for _, s := range statuses {
			v.allowed[s] = struct{}{}
		}
	}
	return v
}

// Validate returns nil if app is valid, otherwise an Errors value.
func (v *Validator) Validate(app *models.JobApplication) error {
	errs := Errors{}

	requireText(errs, "company", app.Company, MaxCompanyLength)
	requireText(errs, "role", app.Role, MaxRoleLength)
	requireText(errs, "status", app.Status, MaxStatusLength)

	if _, ok := errs["status"]; !ok && v.allowed != nil {
		if _, known := v.allowed[app.Status]; !known {
			errs["status"] = "unknown status " + strconv.Quote(app.Status)
		}
	}

	maxLength(errs, "notes", app.Notes, MaxNotesLength)
	maxLength(errs, "project_name", app.ProjectName, MaxProjectLength)
	maxLength(errs, "project_title", app.ProjectTitle, MaxProjectLength)

	if app.ProjectURL != "" {
		if valid, msg := ValidateURL(app.ProjectURL); !valid {
			errs["project_url"] = msg
		}
	}

	if app.StartDate != nil && app.EndDate != nil && app.EndDate.Before(app.StartDate.Time) {
		errs["end_date"] = "must not be before start_date"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func requireText(errs Errors, field, value string, limit int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "is required"
		return
	}
	maxLength(errs, field, value, limit)
}

func maxLength(errs Errors, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		errs[field] = "must be at most " + strconv.Itoa(limit) + " characters"
	}
}
