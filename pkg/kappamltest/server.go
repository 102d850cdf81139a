// Package kappamltest provides an in-memory KappaML API server for tests.
//
// The server implements the model endpoints of the hosted API closely enough
// to drive a kappaml.Client end to end: models are created with random ids,
// report a scripted sequence of deployment statuses, learn by keeping simple
// running statistics and predict from them. Every request is counted by route
// so tests can assert how many round trips an operation made.
//
//	srv := kappamltest.NewServer(kappamltest.WithStatuses("Pending", "Deployed"))
//	defer srv.Close()
//
//	client, _ := kappaml.New(kappaml.WithAPIKey(srv.APIKey()), kappaml.WithBaseURL(srv.BaseURL()))
package kappamltest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/kappaml/kappaml-go/pkg/constants"
)

// DefaultAPIKey is the key a Server accepts unless WithAPIKey is used.
const DefaultAPIKey = "kappamltest-key"

// PathPrefix is the API version prefix routes are mounted under.
const PathPrefix = "/v1"

// Server is a fake KappaML API backed by httptest.Server.
type Server struct {
	srv    *httptest.Server
	apiKey string
	logger *zerolog.Logger

	mu       sync.Mutex
	models   map[string]*model
	statuses []string
	hits     map[string]int
	failure  *failure
}

type failure struct {
	code int
	body string
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKey sets the key the server requires in the X-API-Key header.
// An empty key disables the check.
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// WithStatuses sets the deployment statuses reported for newly created
// models. Each status check consumes one entry; the last entry repeats.
func WithStatuses(statuses ...string) Option {
	return func(s *Server) {
		if len(statuses) > 0 {
			s.statuses = append([]string(nil), statuses...)
		}
	}
}

// WithLogger logs every request at debug level.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer starts a server. Callers must Close it.
func NewServer(opts ...Option) *Server {
	nop := zerolog.Nop()
	s := &Server{
		apiKey:   DefaultAPIKey,
		logger:   &nop,
		models:   make(map[string]*model),
		statuses: []string{constants.StatusDeployed},
		hits:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.routes())
	return s
}

// routes builds the chi router for the model API.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	api := r.With(s.authenticate, s.inject)
	api.Post(PathPrefix+"/models", s.handleCreate)
	api.Get(PathPrefix+"/models/{id}", s.handleGet)
	api.Delete(PathPrefix+"/models/{id}", s.handleDelete)
	api.Post(PathPrefix+"/models/{id}/learn", s.handleLearn)
	api.Post(PathPrefix+"/models/{id}/predict", s.handlePredict)
	api.Get(PathPrefix+"/models/{id}/metrics", s.handleMetrics)

	return r
}

// URL returns the root URL of the server.
func (s *Server) URL() string {
	return s.srv.URL
}

// BaseURL returns the URL to pass to kappaml.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.srv.URL + PathPrefix
}

// APIKey returns the key the server accepts.
func (s *Server) APIKey() string {
	return s.apiKey
}

// Client returns an *http.Client configured for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// FailWith makes every following API request answer with code and body,
// until Recover is called.
func (s *Server) FailWith(code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &failure{code: code, body: body}
}

// Recover undoes FailWith.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = nil
}

// Hits returns how many requests matched the route, for example
// Hits(http.MethodGet, "/models/{id}"). Requests rejected by FailWith or the
// API key check are counted too.
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// Requests returns the total number of requests served.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// record counts requests by their matched route pattern once routing is done.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		pattern = strings.TrimPrefix(pattern, PathPrefix)
		if len(pattern) > 1 {
			pattern = strings.TrimSuffix(pattern, "/")
		}

		s.mu.Lock()
		s.hits[r.Method+" "+pattern]++
		s.mu.Unlock()

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", pattern).
			Msg("kappamltest request")
	})
}

// authenticate rejects requests without the configured API key.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get(constants.APIKeyHeader) != s.apiKey {
			writeError(w, http.StatusUnauthorized, "Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// inject answers with the FailWith response when one is set.
func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f := s.failure
		s.mu.Unlock()

		if f != nil {
			w.WriteHeader(f.code)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}
