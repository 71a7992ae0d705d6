package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	yaml "go.yaml.in/yaml/v3"
)

// Config holds all configuration for the status page
type Config struct {
	CheckDir       string        `yaml:"check_dir" validate:"required"`
	Watch          bool          `yaml:"watch"`
	Database       string        `yaml:"database"`
	Retention      time.Duration `yaml:"retention" validate:"gte=0"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReportDir      string        `yaml:"report_dir"`
	ReportSchedule string        `yaml:"report_schedule" validate:"required_with=ReportDir"`
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogFormat      string        `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Default returns the configuration used when neither a file nor a flag sets a field
func Default() Config {
	return Config{
		Watch:          true,
		Port:           8080,
		ReportSchedule: "@every 5m",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.ReportDir != "" {
		if _, err := cron.ParseStandard(c.ReportSchedule); err != nil {
			return fmt.Errorf("invalid report schedule %q: %w", c.ReportSchedule, err)
		}
	}
	return nil
}

// LoadFile decodes a YAML config file on top of cfg. Keys missing from the file keep their value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}
