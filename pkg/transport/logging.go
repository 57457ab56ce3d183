package transport

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

var (
	apiKeyPattern      = regexp.MustCompile(`sk-[a-zA-Z0-9_\-]+`)
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/=\-]+`)
)

// sensitiveHeaders are never logged verbatim
var sensitiveHeaders = []string{"Authorization", "Api-Key", "Proxy-Authorization", "Cookie", "Set-Cookie"}

// Redact masks API keys and bearer tokens found in s
func Redact(s string) string {
	s = bearerTokenPattern.ReplaceAllString(s, "Bearer ***")
	return apiKeyPattern.ReplaceAllString(s, "sk-***")
}

// RedactHeader returns a copy of h with credentials masked
func RedactHeader(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range sensitiveHeaders {
		if out.Get(name) != "" {
			out.Set(name, "***")
		}
	}
	return out
}

// Logging logs every round trip with method, URL, status and latency.
// Failed requests and 4xx/5xx responses are logged at warn level, everything
// else at debug. Request headers are only included when debug is enabled and
// always pass through RedactHeader.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			start := time.Now()

			resp, err := next.RoundTrip(req)

			attrs := []any{
				"method", req.Method,
				"url", req.URL.Redacted(),
				"duration", time.Since(start),
			}
			if logger.Enabled(ctx, slog.LevelDebug) {
				attrs = append(attrs, "headers", RedactHeader(req.Header))
			}

			if err != nil {
				logger.WarnContext(ctx, "http request failed", append(attrs, "error", Redact(err.Error()))...)
				return nil, err
			}

			attrs = append(attrs, "status", resp.StatusCode)
			if id := resp.Header.Get("X-Request-Id"); id != "" {
				attrs = append(attrs, "request_id", id)
			}

			level := slog.LevelDebug
			if resp.StatusCode >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "http request", attrs...)

			return resp, nil
		})
	}
}
