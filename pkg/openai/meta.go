package openai

import (
	"net/http"
	"strconv"
	"time"
)

// ResponseMeta carries transport metadata of a response. It is embedded in
// every response type and never serialized.
type ResponseMeta struct {
	header http.Header
}

func (m *ResponseMeta) setHeader(h http.Header) {
	m.header = h
}

// headerSetter is implemented by every type embedding ResponseMeta
type headerSetter interface {
	setHeader(h http.Header)
}

// Header returns the HTTP response headers
func (m ResponseMeta) Header() http.Header {
	return m.header
}

// RequestID returns the id the API assigned to the request
func (m ResponseMeta) RequestID() string {
	return m.header.Get("X-Request-Id")
}

// ProcessingTime returns the server side processing time, when reported
func (m ResponseMeta) ProcessingTime() time.Duration {
	ms, err := strconv.Atoi(m.header.Get("Openai-Processing-Ms"))
	if err != nil {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// RateLimit returns the rate limit state reported with the response
func (m ResponseMeta) RateLimit() RateLimit {
	return ParseRateLimit(m.header)
}

// RateLimit describes the x-ratelimit-* response headers. Fields are zero
// when the corresponding header is absent or malformed.
type RateLimit struct {
	LimitRequests     int
	LimitTokens       int
	RemainingRequests int
	RemainingTokens   int
	ResetRequests     time.Duration
	ResetTokens       time.Duration
}

// ParseRateLimit reads the rate limit headers from h
func ParseRateLimit(h http.Header) RateLimit {
	return RateLimit{
		LimitRequests:     headerInt(h, "X-Ratelimit-Limit-Requests"),
		LimitTokens:       headerInt(h, "X-Ratelimit-Limit-Tokens"),
		RemainingRequests: headerInt(h, "X-Ratelimit-Remaining-Requests"),
		RemainingTokens:   headerInt(h, "X-Ratelimit-Remaining-Tokens"),
		ResetRequests:     headerDuration(h, "X-Ratelimit-Reset-Requests"),
		ResetTokens:       headerDuration(h, "X-Ratelimit-Reset-Tokens"),
	}
}

func headerInt(h http.Header, name string) int {
	v, err := strconv.Atoi(h.Get(name))
	if err != nil {
		return 0
	}
	return v
}

func headerDuration(h http.Header, name string) time.Duration {
	d, err := time.ParseDuration(h.Get(name))
	if err != nil {
		return 0
	}
	return d
}
