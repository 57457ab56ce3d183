package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-oai/pkg/openai"
)

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.Subset(t, names, []string{"deepseek", "ollama", "openai", "openrouter"})
	assert.IsNonDecreasing(t, names)
}

func TestGetPresetIgnoresCase(t *testing.T) {
	p, ok := GetPreset("OpenRouter")
	require.True(t, ok)
	assert.Equal(t, "https://openrouter.ai/api/v1", p.BaseURL)
	assert.Equal(t, "OPENROUTER_API_KEY", p.APIKeyEnv)
}

func TestCreateClient(t *testing.T) {
	t.Run("unknown preset", func(t *testing.T) {
		_, err := New().CreateClient("nonexistent")
		require.Error(t, err)
		assert.True(t, errors.Is(err, openai.ErrConfig))
	})

	t.Run("default preset reads OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_BASE_URL", "")
		t.Setenv("OPENAI_API_BASE", "")

		client, err := New().CreateClient("")
		require.NoError(t, err)
		assert.Equal(t, openai.DefaultBaseURL, client.BaseURL())
		assert.Equal(t, "sk-test", client.Config().APIKey)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "")

		_, err := New().CreateClient("deepseek")
		require.Error(t, err)
		assert.True(t, errors.Is(err, openai.ErrConfig))
	})

	t.Run("preset key does not leak from OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("OPENROUTER_API_KEY", "sk-or")

		client, err := New().CreateClient("openrouter")
		require.NoError(t, err)
		assert.Equal(t, "sk-or", client.Config().APIKey)
		assert.Equal(t, "https://openrouter.ai/api/v1", client.BaseURL())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		t.Setenv("OLLAMA_HOST", "127.0.0.1:11434")

		client, err := New().CreateClient("ollama")
		require.NoError(t, err)
		assert.Equal(t, "ollama", client.Config().APIKey)
		assert.Equal(t, "http://127.0.0.1:11434/v1", client.BaseURL())
	})

	t.Run("options win over the preset", func(t *testing.T) {
		t.Setenv("OLLAMA_HOST", "")

		client, err := New().CreateClient("ollama", openai.WithBaseURL("http://example.com/v1"))
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/v1", client.BaseURL())
	})
}

func TestOpenAIPresetMatchesConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		apiBase string
		baseURL string
		want    string
	}{
		{name: "defaults", want: openai.DefaultBaseURL},
		{name: "OPENAI_API_BASE", apiBase: "https://proxy.example.com/api", want: "https://proxy.example.com/api"},
		{name: "OPENAI_BASE_URL kept as is", baseURL: "https://proxy.example.com/api", want: "https://proxy.example.com/api"},
		{name: "OPENAI_API_BASE wins", apiBase: "https://a.example/v1", baseURL: "https://b.example/v1", want: "https://a.example/v1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("OPENAI_API_BASE", tt.apiBase)
			t.Setenv("OPENAI_BASE_URL", tt.baseURL)

			client, err := New().CreateClient("openai")
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.BaseURL())
			assert.Equal(t, openai.ConfigFromEnv().BaseURL, client.BaseURL())
		})
	}
}

func TestPresetIgnoresOpenAIBaseURL(t *testing.T) {
	t.Setenv("OPENAI_API_BASE", "https://proxy.example.com/api")
	t.Setenv("DEEPSEEK_API_KEY", "sk-ds")

	client, err := New().CreateClient("deepseek")
	require.NoError(t, err)
	assert.Equal(t, "https://api.deepseek.com/v1", client.BaseURL())
}

func TestRegisterPreset(t *testing.T) {
	t.Setenv("LOCALAI_KEY", "secret")

	RegisterPreset(Preset{Name: "LocalAI", BaseURL: "http://localai:8080/v1", APIKeyEnv: "LOCALAI_KEY", RequiresKey: true})

	client, err := New().CreateClient("localai")
	require.NoError(t, err)
	assert.Equal(t, "http://localai:8080/v1", client.BaseURL())
	assert.Contains(t, ListPresets(), "localai")
}

func TestNormalizeBaseURL(t *testing.T) {
	p := Preset{BaseURL: "http://localhost:11434/v1"}
	tests := map[string]string{
		"localhost:11434":           "http://localhost:11434/v1",
		"http://gpu:11434/":         "http://gpu:11434/v1",
		"https://ollama.example/v1": "https://ollama.example/v1",
		"https://gpu.example/api":   "https://gpu.example/api",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBaseURL(p, in), in)
	}
}
