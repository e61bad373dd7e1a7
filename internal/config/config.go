package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// AvailabilityTemplate defines a recurring weekly availability window for a
// worker, expanded into concrete dated windows for the visible week.
type AvailabilityTemplate struct {
	Worker      string `yaml:"worker" validate:"required"`
	RRule       string `yaml:"rrule" validate:"required"`
	WindowStart string `yaml:"windowStart" validate:"required"`
	WindowEnd   string `yaml:"windowEnd" validate:"required"`
}

// RecommendConfig holds the recommendation engine weights.
type RecommendConfig struct {
	FitWeight       float64 `yaml:"fitWeight" validate:"min=0"`
	EarlinessWeight float64 `yaml:"earlinessWeight" validate:"min=0"`
	BalanceWeight   float64 `yaml:"balanceWeight" validate:"min=0"`
}

// TimelineConfig holds render geometry and the initial view state.
type TimelineConfig struct {
	PixelWidth  float64 `yaml:"pixelWidth" validate:"gt=0"`
	RowHeight   float64 `yaml:"rowHeight" validate:"gt=0"`
	InitialView string  `yaml:"initialView" validate:"oneof=day week"`
}

// AdvisorConfig controls the optional AI suggestion narrator.
type AdvisorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	DatabaseURL           string                 `yaml:"databaseURL" validate:"required"`
	Recommend             RecommendConfig        `yaml:"recommend"`
	Timeline              TimelineConfig         `yaml:"timeline"`
	Advisor               AdvisorConfig          `yaml:"advisor,omitempty"`
	AvailabilityTemplates []AvailabilityTemplate `yaml:"availabilityTemplates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration defaults applied before the file is
// decoded on top.
func Default() Config {
	return Config{
		Recommend: RecommendConfig{FitWeight: 1.0, EarlinessWeight: 1.0, BalanceWeight: 1.0},
		Timeline:  TimelineConfig{PixelWidth: 1440, RowHeight: 24, InitialView: "week"},
	}
}

// Load loads and validates the configuration from crewplan_config.yaml,
// looking in the current directory first, then the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax, and window
// clock times.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tpl := range cfg.AvailabilityTemplates {
		if _, err := rrule.StrToRRule(tpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in availabilityTemplates[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for crewplan_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, error) {
	configFileName := "crewplan_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
