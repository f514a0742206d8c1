// Package devserver hosts the HTML signup form, the country/region option
// API and a stub signup endpoint so the whole flow runs locally.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-signup/components/regions"
	"github.com/goliatone/go-signup/internal/contract"
	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/renderers/html"
	"github.com/goliatone/go-signup/pkg/signup"
)

// Config holds the server settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// FailStatus makes the stub endpoint answer every signup with this
	// status. Zero validates normally.
	FailStatus int
	// Renderer names the registry entry used for the form page.
	Renderer string
	Locale   string
}

// Option customises a Server.
type Option func(*Server)

// WithDataset replaces the embedded country/region dataset.
func WithDataset(ds *regions.Dataset) Option {
	return func(s *Server) {
		if ds != nil {
			s.dataset = ds
		}
	}
}

// WithRegistry supplies the renderers available to the form page.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithSubmitter makes the form page submit through submitter instead of
// calling the stub endpoint in process.
func WithSubmitter(submitter signup.Submitter) Option {
	return func(s *Server) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithTranslator sets the translator used when building views.
func WithTranslator(t render.Translator) Option {
	return func(s *Server) {
		s.translator = t
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server is the dev HTTP server.
type Server struct {
	cfg        Config
	dataset    *regions.Dataset
	contract   *contract.Contract
	registry   *render.Registry
	submitter  signup.Submitter
	translator render.Translator
	logger     *slog.Logger
	mux        *http.ServeMux
}

// New creates a Server and registers all routes.
func New(cfg Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.cfg.Addr == "" {
		s.cfg.Addr = ":3000"
	}
	if s.cfg.ShutdownTimeout <= 0 {
		s.cfg.ShutdownTimeout = 5 * time.Second
	}
	if s.cfg.Renderer == "" {
		s.cfg.Renderer = "html"
	}

	if s.dataset == nil {
		ds, err := regions.DefaultDataset()
		if err != nil {
			return nil, fmt.Errorf("devserver: load dataset: %w", err)
		}
		s.dataset = ds
	}

	c, err := contract.Default()
	if err != nil {
		return nil, fmt.Errorf("devserver: load contract: %w", err)
	}
	s.contract = c

	if s.registry == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("devserver: html renderer: %w", err)
		}
		s.registry = render.NewRegistry()
		if err := s.registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	if !s.registry.Has(s.cfg.Renderer) {
		return nil, fmt.Errorf("devserver: %w: %q", render.ErrUnknownRenderer, s.cfg.Renderer)
	}

	if s.submitter == nil {
		s.submitter = signup.SubmitterFunc(s.submitInProcess)
	}

	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)

	// Final order (outermost to innermost):
	//   recovery -> request id -> logging -> handler
	h = s.loggingMiddleware(h)
	h = requestIDMiddleware(h)
	h = s.recoveryMiddleware(h)

	return h
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dev server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("dev server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) registerRoutes() error {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /openapi.yaml", s.handleOpenAPI)
	s.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))

	s.mux.HandleFunc("GET /{$}", s.handleForm)
	s.mux.HandleFunc("POST /{$}", s.handleFormPost)
	s.mux.HandleFunc("POST "+contract.SignupPath, s.handleSignup)

	component := regions.New(regions.WithDataset(s.dataset))
	if _, err := component.RegisterRoutes(s.mux, "/"); err != nil {
		return fmt.Errorf("devserver: register region routes: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(contract.Raw())
}
