// Package api serves the pipeline over HTTP.
//
// # Endpoints
//
//	GET /healthz                                liveness probe
//	GET /version                                build information (JSON)
//	GET /v1/classify?a=&b=&c=&d=                class, trace, det and fixed points (JSON)
//	GET /v1/grandma?ta=&tb=&root=plus|minus     one flame (XML)
//	GET /v1/atlas?radius=&root=plus|minus       lattice sweep (XML)
//
// Complex parameters use Go syntax: "2", "1.87+0.1i" or "(2-1i)". A "+"
// must be percent-encoded in query strings.
//
// Errors are JSON objects {"code": ..., "message": ...}. Inputs the recipe
// rejects answer 422 Unprocessable Entity with code INVALID_PARAMETERS;
// malformed requests answer 400.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// MaxAtlasRadius bounds sweeps requested over HTTP.
const MaxAtlasRadius = 4

// RequestTimeout bounds every request.
const RequestTimeout = 60 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewRouter returns the API handler. A nil logger uses log.Default().
func NewRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/classify", s.handleClassify)
		r.Get("/grandma", s.handleGrandma)
		r.Get("/atlas", s.handleAtlas)
	})
	return r
}
