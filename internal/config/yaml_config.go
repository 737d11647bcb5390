package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jobtracker/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists that are awkward to express as env vars live here.
type YAMLConfig struct {
	Statuses []string          `yaml:"statuses"` // Accepted status values; empty accepts any
	Seed     []SeedApplication `yaml:"seed"`     // Development sample data
	Defaults DefaultsConfig    `yaml:"defaults"`
}

// SeedApplication is a sample application inserted in development.
type SeedApplication struct {
	Company     string `yaml:"company"`
	Role        string `yaml:"role"`
	Status      string `yaml:"status"`
	AppliedDate string `yaml:"applied_date,omitempty"` // YYYY-MM-DD
	Notes       string `yaml:"notes,omitempty"`
}

// DefaultsConfig defines default settings.
type DefaultsConfig struct {
	Status string `yaml:"status"` // Status assigned to seed entries that omit one
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Defaults.Status == "" {
		cfg.Defaults.Status = models.StatusApplied
	}

	return &cfg, nil
}

// StatusCatalog returns the configured status values, or nil when unrestricted.
func (c *YAMLConfig) StatusCatalog() []string {
	if c == nil {
		return nil
	}
	return c.Statuses
}

// SeedApplications converts the seed entries into applications.
func (c *YAMLConfig) SeedApplications() ([]models.JobApplication, error) {
	if c == nil {
		return nil, nil
	}
	apps := make([]models.JobApplication, 0, len(c.Seed))
	for i, s := range c.Seed {
		app := models.JobApplication{
			Company: s.Company,
			Role:    s.Role,
			Status:  s.Status,
			Notes:   s.Notes,
		}
		if app.Status == "" {
			app.Status = c.Defaults.Status
		}
		if s.AppliedDate != "" {
			d, err := models.ParseDate(s.AppliedDate)
			if err != nil {
				return nil, fmt.Errorf("seed entry %d: invalid applied_date %q: %w", i, s.AppliedDate, err)
			}
			app.AppliedDate = &d
		}
		apps = append(apps, app)
	}
	return apps, nil
}
