package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Connection pool defaults
const (
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second
)

// Options configures the *http.Client built by NewHTTPClient
type Options struct {
	// Timeout bounds the wait for the response headers. It does not limit how
	// long a streamed body may be read; use the request context for that.
	Timeout time.Duration

	// ProxyURL routes every request through the given proxy. When empty the
	// standard HTTP_PROXY, HTTPS_PROXY and NO_PROXY variables apply.
	ProxyURL string

	// Middlewares wrap the transport, outermost first.
	Middlewares []Middleware
}

// NewHTTPClient creates an *http.Client with connection pooling, optional
// proxy and the configured middleware chain.
func NewHTTPClient(opts Options) (*http.Client, error) {
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          DefaultMaxIdleConns,
		MaxIdleConnsPerHost:   DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
		ForceAttemptHTTP2:     true,
	}

	if opts.ProxyURL != "" {
		proxy, err := ParseProxyURL(opts.ProxyURL)
		if err != nil {
			return nil, err
		}
		base.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Transport: Chain(base, opts.Middlewares...),
	}, nil
}

// ParseProxyURL parses and checks a proxy address
func ParseProxyURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("invalid proxy url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: missing host", raw)
	}
	return u, nil
}
