package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// serviceFile is the serverless-style layout carrying the config under custom.fargate.
type serviceFile struct {
	Custom struct {
		Fargate yaml.Node `yaml:"fargate"`
	} `yaml:"custom"`
}

// Load reads a task configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a task configuration. When the document has a custom.fargate
// section that section is the configuration; otherwise the whole document is.
func Parse(data []byte) (*Config, error) {
	var svc serviceFile
	if err := yaml.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := &Config{}
	if svc.Custom.Fargate.Kind != 0 {
		if err := svc.Custom.Fargate.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing custom.fargate: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural requirements of a configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "fargate", Tag: "required"}
	}
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Namespace(), Tag: verrs[0].Tag()}
	}
	return fmt.Errorf("validating config: %w", err)
}

// ValidationError reports a configuration field that failed a structural rule.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s failed %q", e.Field, e.Tag)
}
