package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: http.NoBody}, nil
	})
	rt := Chain(base, Tracing(otelhttp.WithTracerProvider(provider)))

	resp, err := rt.RoundTrip(newRequest(t, http.MethodGet, "http://example.com/v1/models"))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /v1/models", spans[0].Name())
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
}
