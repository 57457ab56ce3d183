// Client configuration, environment loading and configuration files
package openai

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inercia/go-oai/pkg/transport"
)

const (
	// DefaultBaseURL is the production endpoint of the API
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout bounds the wait for response headers
	DefaultTimeout = 60 * time.Second
	// DefaultAssistantsVersion is sent in the OpenAI-Beta header on assistants calls
	DefaultAssistantsVersion = "assistants=v1"
)

// Environment variables read by ConfigFromEnv
const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvAPIBase      = "OPENAI_API_BASE"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvOrganization = "OPENAI_ORGANIZATION"
	EnvOrgID        = "OPENAI_ORG_ID"
	EnvProject      = "OPENAI_PROJECT_ID"
	EnvTimeout      = "OPENAI_TIMEOUT"
	EnvProxy        = "OPENAI_PROXY"
)

// Config holds everything needed to build a Client
type Config struct {
	APIKey            string            `json:"api_key,omitempty" yaml:"api_key"`
	BaseURL           string            `json:"base_url,omitempty" yaml:"base_url"`
	Organization      string            `json:"organization,omitempty" yaml:"organization"`
	Project           string            `json:"project,omitempty" yaml:"project"`
	Timeout           time.Duration     `json:"timeout,omitempty" yaml:"timeout"`
	ProxyURL          string            `json:"proxy_url,omitempty" yaml:"proxy_url"`
	AssistantsVersion string            `json:"assistants_version,omitempty" yaml:"assistants_version"`
	Headers           map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// DefaultConfig returns a configuration pointing at the production API with
// no credentials.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		AssistantsVersion: DefaultAssistantsVersion,
	}
}

// ConfigFromEnv builds a configuration from the OPENAI_* environment
// variables, falling back to the defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv(EnvAPIKey)

	if baseURL := firstEnv(EnvAPIBase, EnvBaseURL); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.Organization = firstEnv(EnvOrganization, EnvOrgID)
	cfg.Project = os.Getenv(EnvProject)
	cfg.ProxyURL = os.Getenv(EnvProxy)
	cfg.Timeout = parseTimeoutFromEnv(EnvTimeout, DefaultTimeout)

	return cfg
}

// LoadConfigFile reads a YAML configuration file. ${VAR} references are
// expanded from the environment, and fields left empty are filled from
// ConfigFromEnv.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration data, see LoadConfigFile
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, &Error{Kind: KindConfig, Message: "failed to parse config", Cause: err}
	}

	cfg.applyDefaults(ConfigFromEnv())
	return cfg, nil
}

// applyDefaults fills empty fields from fallback
func (c *Config) applyDefaults(fallback Config) {
	if c.APIKey == "" {
		c.APIKey = fallback.APIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = fallback.BaseURL
	}
	if c.Organization == "" {
		c.Organization = fallback.Organization
	}
	if c.Project == "" {
		c.Project = fallback.Project
	}
	if c.Timeout == 0 {
		c.Timeout = fallback.Timeout
	}
	if c.ProxyURL == "" {
		c.ProxyURL = fallback.ProxyURL
	}
	if c.AssistantsVersion == "" {
		c.AssistantsVersion = fallback.AssistantsVersion
	}
}

// Validate checks the configuration without touching the network
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return newConfigError("api key is required (set %s or pass it explicitly)", EnvAPIKey)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &Error{Kind: KindConfig, Message: fmt.Sprintf("invalid base url %q", c.BaseURL), Cause: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return newConfigError("invalid base url %q: must be an absolute http(s) url", c.BaseURL)
	}

	if c.ProxyURL != "" {
		if _, err := transport.ParseProxyURL(c.ProxyURL); err != nil {
			return &Error{Kind: KindConfig, Message: "invalid proxy", Cause: err}
		}
	}

	if c.Timeout < 0 {
		return newConfigError("timeout must not be negative")
	}
	return nil
}

// parseTimeoutFromEnv parses a timeout given either as integer seconds or as
// a Go duration, with fallback to the default
func parseTimeoutFromEnv(envVar string, defaultTimeout time.Duration) time.Duration {
	timeoutStr := strings.TrimSpace(os.Getenv(envVar))
	if timeoutStr == "" {
		return defaultTimeout
	}
	if timeoutSecs, err := strconv.Atoi(timeoutStr); err == nil && timeoutSecs > 0 {
		return time.Duration(timeoutSecs) * time.Second
	}
	if d, err := time.ParseDuration(timeoutStr); err == nil && d > 0 {
		return d
	}
	return defaultTimeout
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
