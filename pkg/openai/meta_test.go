package openai

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseMeta(t *testing.T) {
	h := http.Header{}
	h.Set("X-Request-Id", "req_123")
	h.Set("Openai-Processing-Ms", "87")

	var r ChatCompletionResponse
	var setter headerSetter = &r
	setter.setHeader(h)

	assert.Equal(t, "req_123", r.RequestID())
	assert.Equal(t, 87*time.Millisecond, r.ProcessingTime())
	assert.Equal(t, h, r.Header())
}

func TestResponseMetaEmpty(t *testing.T) {
	var m ResponseMeta
	assert.Empty(t, m.RequestID())
	assert.Zero(t, m.ProcessingTime())
	assert.Equal(t, RateLimit{}, m.RateLimit())
}

func TestParseRateLimit(t *testing.T) {
	h := http.Header{}
	h.Set("X-Ratelimit-Limit-Requests", "60")
	h.Set("X-Ratelimit-Limit-Tokens", "150000")
	h.Set("X-Ratelimit-Remaining-Requests", "59")
	h.Set("X-Ratelimit-Remaining-Tokens", "149984")
	h.Set("X-Ratelimit-Reset-Requests", "1s")
	h.Set("X-Ratelimit-Reset-Tokens", "6m0s")

	assert.Equal(t, RateLimit{
		LimitRequests:     60,
		LimitTokens:       150000,
		RemainingRequests: 59,
		RemainingTokens:   149984,
		ResetRequests:     time.Second,
		ResetTokens:       6 * time.Minute,
	}, ParseRateLimit(h))

	h.Set("X-Ratelimit-Limit-Requests", "many")
	h.Set("X-Ratelimit-Reset-Tokens", "soon")
	rl := ParseRateLimit(h)
	assert.Zero(t, rl.LimitRequests)
	assert.Zero(t, rl.ResetTokens)
}
