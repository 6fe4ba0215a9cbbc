package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
//
// APIKey is optional at startup: a missing key only fails the AI-backed
// requests, never the whole process.
type EnvVars struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	DatabaseUrl        string   `env:"DATABASE_URL"`
	APIKey             string   `env:"API_KEY" optional:"true"`
	AIProvider         string   `env:"AI_PROVIDER" envDefault:"gemini"`
	AIModel            string   `env:"AI_MODEL" optional:"true"`
	AWSRegion          string   `env:"AWS_REGION"`
	AWSAccessKeyID     string   `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string   `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string   `env:"S3_BUCKET"`
	IDHeader           string   `env:"ID_HEADER" optional:"true"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
	PromptsPath        string   `env:"PROMPTS_PATH" envDefault:"configs/prompts.yaml"`
	RateLimitRPS       int      `env:"RATE_LIMIT_RPS" envDefault:"5"`
}

// Supported values for AI_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	config.EnvVars.AIProvider = strings.ToLower(strings.TrimSpace(config.EnvVars.AIProvider))
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	switch c.EnvVars.AIProvider {
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("$AIProvider must be one of %q, %q or %q, got %q",
			ProviderGemini, ProviderAnthropic, ProviderOpenAI, c.EnvVars.AIProvider)
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
