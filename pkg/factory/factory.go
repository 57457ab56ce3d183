package factory

import (
	"os"
	"strings"

	"github.com/inercia/go-oai/pkg/openai"
)

const DefaultPreset = "openai"

// Factory creates clients from presets
type Factory struct{}

// New creates a new client factory
func New() *Factory {
	return &Factory{}
}

// Config resolves the client configuration of a preset from the environment
func (f *Factory) Config(name string) (openai.Config, Preset, error) {
	if name == "" {
		name = DefaultPreset
	}
	preset, exists := GetPreset(name)
	if !exists {
		return openai.Config{}, Preset{}, &openai.Error{
			Kind:    openai.KindConfig,
			Message: "unsupported preset: " + name,
		}
	}

	cfg := openai.ConfigFromEnv()
	// presets keyed on OPENAI_API_KEY keep the endpoint ConfigFromEnv resolved
	if preset.APIKeyEnv != openai.EnvAPIKey {
		cfg.BaseURL = preset.BaseURL
	}
	if preset.BaseURLEnv != "" {
		if override := os.Getenv(preset.BaseURLEnv); override != "" {
			cfg.BaseURL = normalizeBaseURL(preset, override)
		}
	}

	cfg.APIKey = ""
	if preset.APIKeyEnv != "" {
		cfg.APIKey = os.Getenv(preset.APIKeyEnv)
	}
	if cfg.APIKey == "" && !preset.RequiresKey {
		cfg.APIKey = preset.Name
	}
	return cfg, preset, nil
}

// CreateClient creates a client for the named preset. Options are applied
// after the preset, so they win.
func (f *Factory) CreateClient(name string, opts ...openai.Option) (*openai.Client, error) {
	cfg, _, err := f.Config(name)
	if err != nil {
		return nil, err
	}
	return openai.NewClientWithConfig(cfg, opts...)
}

// normalizeBaseURL adds the scheme and the /v1 suffix to bare host values
// such as OLLAMA_HOST=127.0.0.1:11434. Values that carry a path are kept.
func normalizeBaseURL(preset Preset, value string) string {
	value = strings.TrimRight(value, "/")
	if !strings.Contains(value, "://") {
		value = "http://" + value
	}
	hostOnly := !strings.Contains(value[strings.Index(value, "://")+3:], "/")
	if hostOnly && strings.HasSuffix(preset.BaseURL, "/v1") {
		value += "/v1"
	}
	return value
}
