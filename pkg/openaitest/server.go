package openaitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/inercia/go-oai/pkg/openai"
)

// APIKey is the key used by clients returned from Server.Client
const APIKey = "sk-test-0123456789"

// Request is a recorded request
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into v
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Map decodes the recorded body into a generic map. It returns nil when the
// body is not a JSON object.
func (r Request) Map() map[string]any {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil
	}
	return m
}

// Server is a fake API server
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Request
}

// NewServer starts a server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{routes: make(map[string]http.HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers the handler for method and path. path is relative to the
// API root, e.g. "/chat/completions".
func (s *Server) Handle(method, path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = handler
}

// Requests returns the requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request. It returns a zero Request
// when nothing has been received.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// BaseURL is the API root served by s
func (s *Server) BaseURL() string {
	return s.URL + "/v1"
}

// Client returns a client pointed at the server. opts are applied after the
// test defaults.
func (s *Server) Client(opts ...openai.Option) *openai.Client {
	all := append([]openai.Option{
		openai.WithBaseURL(s.BaseURL()),
		openai.WithHTTPClient(s.Server.Client()),
	}, opts...)

	client, err := openai.NewClient(APIKey, all...)
	if err != nil {
		panic(fmt.Sprintf("openaitest: failed to create client: %v", err))
	}
	return client
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/v1")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	handler, ok := s.routes[routeKey(r.Method, path)]
	s.mu.Unlock()

	if !ok {
		Error(http.StatusNotFound, "invalid_request_error",
			fmt.Sprintf("Unknown request URL: %s %s", r.Method, path))(w, r)
		return
	}

	// handlers may read the body again
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	handler(w, r)
}

func routeKey(method, path string) string {
	return method + " " + path
}
