package openai

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "api error with details",
			err:  &Error{Kind: KindAPI, StatusCode: 401, Type: "invalid_request_error", Code: "invalid_api_key", Message: "Incorrect API key provided"},
			want: "openai: api error (status 401, type invalid_request_error, code invalid_api_key): Incorrect API key provided",
		},
		{
			name: "transport error with cause",
			err:  newTransportError("POST /chat/completions failed", errors.New("connection refused")),
			want: "openai: transport error: POST /chat/completions failed: connection refused",
		},
		{
			name: "config error",
			err:  newConfigError("api key is required"),
			want: "openai: config error: api key is required",
		},
		{
			name: "cause only",
			err:  &Error{Kind: KindDeserialization, Cause: io.ErrUnexpectedEOF},
			want: "openai: deserialization error: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	apiErr := &Error{Kind: KindAPI, StatusCode: 404, Message: "not found"}
	wrapped := fmt.Errorf("retrieve model: %w", apiErr)

	assert.ErrorIs(t, wrapped, ErrAPI)
	assert.NotErrorIs(t, wrapped, ErrTransport)
	assert.NotErrorIs(t, wrapped, &Error{Kind: KindAPI, Message: "other"}, "non sentinels never match by kind")

	cause := io.ErrUnexpectedEOF
	transportErr := newTransportError("failed to read response body", cause)
	assert.ErrorIs(t, transportErr, ErrTransport)
	assert.ErrorIs(t, transportErr, io.ErrUnexpectedEOF)

	got, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, got.StatusCode)

	_, ok = AsAPIError(transportErr)
	assert.False(t, ok)
	assert.True(t, IsKind(wrapped, KindAPI))
	assert.False(t, IsKind(errors.New("plain"), KindAPI))
}

func TestErrorTemporary(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Error{Kind: KindTransport}).Temporary())
	assert.True(t, (&Error{Kind: KindAPI, StatusCode: 429}).Temporary())
	assert.True(t, (&Error{Kind: KindAPI, StatusCode: 503}).Temporary())
	assert.False(t, (&Error{Kind: KindAPI, StatusCode: 400}).Temporary())
	assert.False(t, (&Error{Kind: KindConfig}).Temporary())
}

func TestParseErrorPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want *Error
	}{
		{
			name: "standard envelope",
			body: `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","param":null,"code":"insufficient_quota"}}`,
			want: &Error{Kind: KindAPI, Message: "You exceeded your current quota", Type: "insufficient_quota", Code: "insufficient_quota"},
		},
		{
			name: "numeric code",
			body: `{"error":{"message":"bad","type":"server_error","code":500}}`,
			want: &Error{Kind: KindAPI, Message: "bad", Type: "server_error", Code: "500"},
		},
		{
			name: "message array",
			body: `{"error":{"message":["first","second"],"type":"invalid_request_error"}}`,
			want: &Error{Kind: KindAPI, Message: "first; second", Type: "invalid_request_error"},
		},
		{
			name: "string error",
			body: `{"error":"model not found"}`,
			want: &Error{Kind: KindAPI, Message: "model not found"},
		},
		{name: "null error", body: `{"error":null}`},
		{name: "no error key", body: `{"id":"chatcmpl-1"}`},
		{name: "not json", body: `<html>Bad Gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseErrorPayload([]byte(tt.body)))
		})
	}
}

func TestDecodeAPIError(t *testing.T) {
	t.Parallel()

	newResponse := func(status int, body string) *http.Response {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"X-Request-Id": []string{"req_abc"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}
	}

	t.Run("envelope", func(t *testing.T) {
		t.Parallel()

		err := decodeAPIError(newResponse(400, `{"error":{"message":"Invalid model","type":"invalid_request_error","param":"model"}}`))
		assert.Equal(t, KindAPI, err.Kind)
		assert.Equal(t, 400, err.StatusCode)
		assert.Equal(t, "Invalid model", err.Message)
		assert.Equal(t, "invalid_request_error", err.Type)
		assert.Equal(t, "model", err.Param)
		assert.Equal(t, "req_abc", err.RequestID)
	})

	t.Run("non json body keeps status text", func(t *testing.T) {
		t.Parallel()

		err := decodeAPIError(newResponse(502, "<html>bad gateway</html>"))
		assert.Equal(t, KindAPI, err.Kind)
		assert.Equal(t, "Bad Gateway", err.Message)
		assert.Equal(t, "<html>bad gateway</html>", string(err.Body))
	})

	t.Run("empty message falls back to status text", func(t *testing.T) {
		t.Parallel()

		err := decodeAPIError(newResponse(429, `{"error":{"message":"","type":"requests"}}`))
		assert.Equal(t, "Too Many Requests", err.Message)
		assert.Equal(t, "requests", err.Type)
		assert.True(t, err.Temporary())
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		err := decodeAPIError(newResponse(599, ""))
		assert.Equal(t, "unexpected status 599", err.Message)
	})
}
