package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ProviderVertex  = "vertex"
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
)

const (
	DefaultProvider    = ProviderVertex
	DefaultModelID     = "gemini-2.5-pro"
	DefaultRegion      = "us-central1"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 512
)

// ModelConfig holds the parameters bound into the LLM client handle at startup.
type ModelConfig struct {
	Provider    string   `yaml:"provider"`
	ModelID     string   `yaml:"model_id"`
	Region      string   `yaml:"region"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

type RelayConfig struct {
	Model ModelConfig `yaml:"model"`
}

// LoadModelConfig reads RELAY_CONFIG_PATH (default configs/relay.yaml).
// A missing file is not an error: the built-in defaults are used.
func LoadModelConfig() (*ModelConfig, error) {
	path := os.Getenv("RELAY_CONFIG_PATH")
	if path == "" {
		path = "configs/relay.yaml"
	}

	var cfg RelayConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyDefaults(&cfg.Model)

	if err := cfg.Model.Validate(); err != nil {
		return nil, err
	}

	return &cfg.Model, nil
}

func applyDefaults(cfg *ModelConfig) {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.ModelID == "" && cfg.Provider == DefaultProvider {
		cfg.ModelID = DefaultModelID
	}
	if cfg.Region == "" && cfg.Provider == DefaultProvider {
		cfg.Region = DefaultRegion
	}
	if cfg.Temperature == nil {
		t := DefaultTemperature
		cfg.Temperature = &t
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
}

func (m *ModelConfig) Validate() error {
	switch m.Provider {
	case ProviderVertex, ProviderBedrock, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q", m.Provider)
	}

	if m.ModelID == "" {
		return fmt.Errorf("model_id is required for provider %s", m.Provider)
	}

	if m.MaxTokens < 0 {
		return fmt.Errorf("negative max_tokens: %d", m.MaxTokens)
	}

	if m.Temperature != nil && (*m.Temperature < 0 || *m.Temperature > 2) {
		return fmt.Errorf("invalid temperature %.2f (expected 0.0-2.0)", *m.Temperature)
	}

	return nil
}

// TemperatureValue returns the configured temperature, or the default when unset.
func (m *ModelConfig) TemperatureValue() float64 {
	if m.Temperature == nil {
		return DefaultTemperature
	}
	return *m.Temperature
}
