package transport

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing wraps the round tripper with OpenTelemetry client spans. Spans are
// named "<METHOD> <path>" unless a custom formatter is passed in opts. The
// global tracer provider and propagator are used by default.
func Tracing(opts ...otelhttp.Option) Middleware {
	defaults := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	}
	opts = append(defaults, opts...)

	return func(next http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(next, opts...)
	}
}
