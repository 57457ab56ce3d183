package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inercia/go-oai/pkg/transport"
)

// Version of the library, reported in the User-Agent header
const Version = "0.3.0"

// Client is an API client. It is immutable after construction and safe for
// concurrent use; every method performs exactly one HTTP round trip and never
// retries.
type Client struct {
	config  Config
	baseURL string
	doer    transport.Doer
	logger  *slog.Logger
	header  http.Header
}

// settings collects what options may change before the client is built
type settings struct {
	config      Config
	doer        transport.Doer
	logger      *slog.Logger
	middlewares []transport.Middleware
}

// Option customizes a Client
type Option func(*settings)

// WithBaseURL overrides the API endpoint, e.g. for a proxy or an OpenAI
// compatible server
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.config.BaseURL = baseURL }
}

// WithOrganization sets the OpenAI-Organization header
func WithOrganization(org string) Option {
	return func(s *settings) { s.config.Organization = org }
}

// WithProject sets the OpenAI-Project header
func WithProject(project string) Option {
	return func(s *settings) { s.config.Project = project }
}

// WithTimeout bounds the wait for response headers of every call
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) { s.config.Timeout = timeout }
}

// WithProxy routes requests through the given proxy URL
func WithProxy(proxyURL string) Option {
	return func(s *settings) { s.config.ProxyURL = proxyURL }
}

// WithAssistantsVersion sets the OpenAI-Beta header value used by the
// assistants, threads, messages and runs calls
func WithAssistantsVersion(version string) Option {
	return func(s *settings) { s.config.AssistantsVersion = version }
}

// WithHeader adds a header sent with every request
func WithHeader(name, value string) Option {
	return func(s *settings) {
		if s.config.Headers == nil {
			s.config.Headers = make(map[string]string)
		}
		s.config.Headers[name] = value
	}
}

// WithHTTPClient replaces the HTTP implementation. Timeout and proxy
// settings are then the responsibility of the given Doer.
func WithHTTPClient(doer transport.Doer) Option {
	return func(s *settings) { s.doer = doer }
}

// WithLogger sets the logger used for request and response logging.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMiddleware appends transport middlewares, outermost first
func WithMiddleware(middlewares ...transport.Middleware) Option {
	return func(s *settings) { s.middlewares = append(s.middlewares, middlewares...) }
}

// NewClient creates a client for the production API with the given key.
// An empty key is a configuration error; use NewClientFromEnv to read it from
// the environment instead.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	return NewClientWithConfig(cfg, opts...)
}

// NewClientFromEnv creates a client configured from the OPENAI_* environment
// variables. It fails with a configuration error when OPENAI_API_KEY is unset.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	return NewClientWithConfig(ConfigFromEnv(), opts...)
}

// NewClientWithConfig creates a client from an explicit configuration. The
// configuration is validated before anything else happens.
func NewClientWithConfig(cfg Config, opts ...Option) (*Client, error) {
	s := &settings{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	s.config.applyDefaults(DefaultConfig())

	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	doer := s.doer
	if doer == nil {
		httpClient, err := transport.NewHTTPClient(transport.Options{
			Timeout:     s.config.Timeout,
			ProxyURL:    s.config.ProxyURL,
			Middlewares: s.middlewares,
		})
		if err != nil {
			return nil, &Error{Kind: KindConfig, Message: "failed to build http client", Cause: err}
		}
		doer = httpClient
	} else {
		doer = transport.WrapDoer(doer, s.middlewares...)
	}

	logger := s.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	header := make(http.Header)
	header.Set("Authorization", "Bearer "+s.config.APIKey)
	header.Set("User-Agent", "go-oai/"+Version)
	if s.config.Organization != "" {
		header.Set("OpenAI-Organization", s.config.Organization)
	}
	if s.config.Project != "" {
		header.Set("OpenAI-Project", s.config.Project)
	}
	for name, value := range s.config.Headers {
		header.Set(name, value)
	}

	return &Client{
		config:  s.config,
		baseURL: strings.TrimRight(s.config.BaseURL, "/"),
		doer:    doer,
		logger:  logger,
		header:  header,
	}, nil
}

// BaseURL returns the endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Config returns the effective configuration
func (c *Client) Config() Config {
	return c.config
}

// requestSettings describe a single outgoing call
type requestSettings struct {
	body        io.Reader
	contentType string
	accept      string
	query       url.Values
	beta        bool
	err         error
}

type requestOption func(*requestSettings)

// withJSON encodes v as the request body
func withJSON(v any) requestOption {
	return func(s *requestSettings) {
		data, err := json.Marshal(v)
		if err != nil {
			s.err = newSerializationError("failed to encode request body", err)
			return
		}
		s.body = bytes.NewReader(data)
		s.contentType = "application/json"
	}
}

// withForm uses a multipart form as the request body
func withForm(f *form) requestOption {
	return func(s *requestSettings) {
		body, contentType, err := f.finish()
		if err != nil {
			s.err = err
			return
		}
		s.body = body
		s.contentType = contentType
	}
}

func withQuery(q url.Values) requestOption {
	return func(s *requestSettings) { s.query = q }
}

func withAccept(accept string) requestOption {
	return func(s *requestSettings) { s.accept = accept }
}

// withBeta marks calls to the assistants family
func withBeta() requestOption {
	return func(s *requestSettings) { s.beta = true }
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts ...requestOption) (*http.Request, error) {
	s := &requestSettings{accept: "application/json"}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		return nil, s.err
	}

	target := c.baseURL + path
	if len(s.query) > 0 {
		target += "?" + s.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, s.body)
	if err != nil {
		return nil, newSerializationError("failed to build request", err)
	}

	for name, values := range c.header {
		req.Header[name] = values
	}
	if s.contentType != "" {
		req.Header.Set("Content-Type", s.contentType)
	}
	req.Header.Set("Accept", s.accept)
	if s.beta && c.config.AssistantsVersion != "" {
		req.Header.Set("OpenAI-Beta", c.config.AssistantsVersion)
	}
	return req, nil
}

// send performs the call and returns the response when the status is 2xx.
// The caller owns the response body.
func (c *Client) send(ctx context.Context, method, path string, opts ...requestOption) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.DebugContext(ctx, "sending request", "method", method, "path", path)

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, newTransportError(method+" "+path+" failed", err)
	}

	c.logger.DebugContext(ctx, "received response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()
		apiErr := decodeAPIError(resp)
		c.logger.WarnContext(ctx, "api error",
			"method", method,
			"path", path,
			"status", apiErr.StatusCode,
			"type", apiErr.Type,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}
	return resp, nil
}

// call performs the request and decodes the JSON response into out
func (c *Client) call(ctx context.Context, method, path string, out any, opts ...requestOption) error {
	resp, err := c.send(ctx, method, path, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError("failed to read response body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newDeserializationError(fmt.Sprintf("failed to decode %T", out), body, err)
	}
	if hs, ok := out.(headerSetter); ok {
		hs.setHeader(resp.Header)
	}
	return nil
}

// doJSON is the common path of the JSON endpoints
func doJSON[T any](ctx context.Context, c *Client, method, path string, opts ...requestOption) (*T, error) {
	var out T
	if err := c.call(ctx, method, path, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// doStream opens a server-sent events stream
func doStream[T any](ctx context.Context, c *Client, path string, body any) (*Stream[T], error) {
	resp, err := c.send(ctx, http.MethodPost, path, withJSON(body), withAccept("text/event-stream"))
	if err != nil {
		return nil, err
	}
	return newStream[T](resp), nil
}

// doRaw returns the undecoded response body
func (c *Client) doRaw(ctx context.Context, method, path string, opts ...requestOption) (*RawResponse, error) {
	opts = append(opts, withAccept("*/*"))
	resp, err := c.send(ctx, method, path, opts...)
	if err != nil {
		return nil, err
	}
	return newRawResponse(resp), nil
}

// endpoint builds a path escaping every id segment
func endpoint(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
