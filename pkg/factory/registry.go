package factory

import (
	"sort"
	"strings"
	"sync"
)

// Preset describes an OpenAI compatible service
type Preset struct {
	// Name is the lower case registry key
	Name string
	// BaseURL is used when BaseURLEnv is unset or empty
	BaseURL string
	// APIKeyEnv names the environment variable holding the key
	APIKeyEnv string
	// BaseURLEnv optionally names a variable overriding BaseURL
	BaseURLEnv string
	// DefaultModel is suggested to callers that have no model of their own
	DefaultModel string
	// RequiresKey is false for local servers, which get the preset name as
	// placeholder key
	RequiresKey bool
}

// presetRegistry holds all registered presets
type presetRegistry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

var globalRegistry = &presetRegistry{
	presets: make(map[string]Preset),
}

// RegisterPreset adds or replaces a preset
func RegisterPreset(p Preset) {
	p.Name = strings.ToLower(p.Name)

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.presets[p.Name] = p
}

// GetPreset returns a preset by name, ignoring case
func GetPreset(name string) (Preset, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	p, exists := globalRegistry.presets[strings.ToLower(name)]
	return p, exists
}

// ListPresets returns all registered preset names, sorted
func ListPresets() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	names := make([]string, 0, len(globalRegistry.presets))
	for name := range globalRegistry.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
