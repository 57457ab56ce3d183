package factory

import (
	"github.com/inercia/go-oai/pkg/openai"
)

func init() {
	// OPENAI_API_BASE and OPENAI_BASE_URL apply as in openai.ConfigFromEnv
	RegisterPreset(Preset{
		Name:         "openai",
		BaseURL:      openai.DefaultBaseURL,
		APIKeyEnv:    openai.EnvAPIKey,
		DefaultModel: string(openai.DefaultModel),
		RequiresKey:  true,
	})

	RegisterPreset(Preset{
		Name:         "openrouter",
		BaseURL:      "https://openrouter.ai/api/v1",
		APIKeyEnv:    "OPENROUTER_API_KEY",
		DefaultModel: "openai/gpt-4o",
		RequiresKey:  true,
	})

	RegisterPreset(Preset{
		Name:         "deepseek",
		BaseURL:      "https://api.deepseek.com/v1",
		APIKeyEnv:    "DEEPSEEK_API_KEY",
		DefaultModel: "deepseek-chat",
		RequiresKey:  true,
	})

	// OLLAMA_HOST holds the server address without the /v1 suffix
	RegisterPreset(Preset{
		Name:         "ollama",
		BaseURL:      "http://localhost:11434/v1",
		BaseURLEnv:   "OLLAMA_HOST",
		DefaultModel: "llama3.2",
		RequiresKey:  false,
	})
}
