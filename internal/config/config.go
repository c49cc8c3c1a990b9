package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	do "github.com/samber/do/v2"
	"gopkg.in/yaml.v3"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

const (
	defaultAPIURL              = "https://api.suse.de"
	defaultReportsURL          = "https://qam.suse.de/testreports"
	defaultIncidentURLTemplate = "https://smelt.suse.de/incident/{{.Incident}}"
)

// Config holds the application configuration. Values come from an
// optional YAML file, with environment variables taking precedence.
type Config struct {
	APIURL              string `yaml:"api_url"`
	ReportsURL          string `yaml:"reports_url"`
	User                string `yaml:"user"`
	Password            string `yaml:"password"`
	IncidentURLTemplate string `yaml:"incident_url_template"`
}

// NewConfig creates a new configuration (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New creates a new configuration from the config file and environment
// variables.
func New() (*Config, error) {
	cfg := &Config{
		APIURL:              defaultAPIURL,
		ReportsURL:          defaultReportsURL,
		IncidentURLTemplate: defaultIncidentURLTemplate,
	}

	if err := loadFile(cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if cfg.User == "" {
		return nil, errors.New("OSC_QAM_USER environment variable or 'user' config entry is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("OSC_QAM_PASSWORD environment variable or 'password' config entry is required")
	}

	return cfg, nil
}

// loadFile merges the YAML config file into cfg. A missing file is
// only an error when its path was set explicitly.
func loadFile(cfg *Config) error {
	path := os.Getenv("OSC_QAM_CONFIG")
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".config", "osc-plugin-qam", "config.yaml")
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}

		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OSC_QAM_APIURL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("OSC_QAM_REPORTS_URL"); v != "" {
		cfg.ReportsURL = v
	}
	if v := os.Getenv("OSC_QAM_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("OSC_QAM_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("OSC_QAM_INCIDENT_URL"); v != "" {
		cfg.IncidentURLTemplate = v
	}
}
