// Package server exposes the form as a web application: the page, its form
// post, a health probe and the embedded stylesheet.
package server

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
	"github.com/goliatone/go-cardioform/pkg/render"
)

const (
	DefaultTitle    = "Heart Disease Risk Assessment"
	DefaultRenderer = "vanilla"

	analyzePath = "/analyze"
	assetsPath  = "/assets"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies a resolved theme to every rendered page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			s.title = trimmed
		}
	}
}

// WithDefaultRenderer names the renderer used when Accept matches none.
func WithDefaultRenderer(name string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.fallback = trimmed
		}
	}
}

// WithAssets serves files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithTokenSource replaces the submission token generator.
func WithTokenSource(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.tokens = fn
		}
	}
}

// Server wires HTTP requests to per-request controllers.
type Server struct {
	fields    model.FieldSet
	predictor predict.Predictor
	registry  *render.Registry
	fallback  string
	theme     *theme.RendererConfig
	assets    fs.FS
	guards    *controller.KeyedGuards
	tokens    func() string
	title     string
	logger    *zap.Logger
}

// New constructs a Server. The registry must hold the default renderer.
func New(fields model.FieldSet, predictor predict.Predictor, registry *render.Registry, options ...Option) (*Server, error) {
	if fields.Len() == 0 {
		return nil, errors.New("server: field set is empty")
	}
	if predictor == nil {
		return nil, errors.New("server: predictor is required")
	}
	if registry == nil {
		return nil, errors.New("server: renderer registry is required")
	}

	s := &Server{
		fields:    fields,
		predictor: predictor,
		registry:  registry,
		fallback:  DefaultRenderer,
		guards:    controller.NewKeyedGuards(),
		tokens:    uuid.NewString,
		title:     DefaultTitle,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if _, err := registry.Get(s.fallback); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Post(analyzePath, s.analyze)
	r.Get("/health", s.health)
	if s.assets != nil {
		r.Handle(assetsPath+"/*", http.StripPrefix(assetsPath+"/", http.FileServer(http.FS(s.assets))))
	}
	return r
}

// Pending reports the submissions currently in flight.
func (s *Server) Pending() int {
	return s.guards.Pending()
}
