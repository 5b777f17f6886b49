// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/cors"
	"github.com/mchmarny/winspect/pkg/errors"
	"github.com/mchmarny/winspect/pkg/llm"
	"github.com/mchmarny/winspect/pkg/settings"
	"github.com/mchmarny/winspect/pkg/snapshotter"
	"github.com/mchmarny/winspect/pkg/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client is the inference surface the server needs; *llm.Client
// implements it.
type Client interface {
	llm.Completer
	ListModels(ctx context.Context) ([]string, error)
	SetModel(model string)
	InvalidateModels()
}

// Dependencies wires the server's collaborators.
type Dependencies struct {
	Store    *store.Store
	Settings *settings.Manager

	// Snapshotter captures new snapshots for POST /v1/snapshots; when
	// nil the endpoint reports SERVICE_UNAVAILABLE (e.g. a daemon
	// serving an archive from a non-Windows host).
	Snapshotter *snapshotter.MachineSnapshotter

	// NewClient builds an inference client from config. Tests override
	// it; nil means the real client.
	NewClient func(cfg llm.Config) (Client, error)
}

// Server represents the HTTP server
type Server struct {
	config      *Config
	deps        *Dependencies
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	jobs        *jobManager
	mu          sync.RWMutex
	ready       bool

	// The inference client is shared across requests so its model
	// cache survives between calls; rebuilt when connection settings
	// change.
	clientMu  sync.Mutex
	client    Client
	clientCfg llm.Config
}

// NewServer creates a new server instance
func NewServer(config *Config, deps *Dependencies) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if deps == nil || deps.Store == nil || deps.Settings == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "server requires a store and settings")
	}
	if deps.NewClient == nil {
		deps.NewClient = func(cfg llm.Config) (Client, error) {
			return llm.New(cfg)
		}
	}

	s := &Server{
		config:      config,
		deps:        deps,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		jobs:        newJobManager(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("GET /v1/snapshots", s.withMiddleware(s.handleListSnapshots))
	mux.HandleFunc("POST /v1/snapshots", s.withMiddleware(s.handleCreateSnapshot))
	mux.HandleFunc("GET /v1/snapshots/latest", s.withMiddleware(s.handleLatestSnapshot))
	mux.HandleFunc("GET /v1/snapshots/{id}", s.withMiddleware(s.handleGetSnapshot))
	mux.HandleFunc("DELETE /v1/snapshots/{id}", s.withMiddleware(s.handleDeleteSnapshot))
	mux.HandleFunc("GET /v1/snapshots/{id}/files", s.withMiddleware(s.handleListFiles))
	mux.HandleFunc("GET /v1/snapshots/{id}/files/{name...}", s.withMiddleware(s.handleGetFile))
	mux.HandleFunc("GET /v1/snapshots/{id}/categories/{category}", s.withMiddleware(s.handleGetCategory))
	mux.HandleFunc("POST /v1/snapshots/{id}/analysis", s.withMiddleware(s.handleStartAnalysis))
	mux.HandleFunc("GET /v1/snapshots/{id}/analysis", s.withMiddleware(s.handleGetAnalysis))
	mux.HandleFunc("GET /v1/snapshots/{id}/compare/{other}", s.withMiddleware(s.handleCompare))
	mux.HandleFunc("GET /v1/models", s.withMiddleware(s.handleListModels))
	mux.HandleFunc("PUT /v1/models", s.withMiddleware(s.handleSelectModel))
	mux.HandleFunc("GET /v1/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("PUT /v1/settings", s.withMiddleware(s.handleUpdateSettings))
	mux.HandleFunc("GET /v1/jobs", s.withMiddleware(s.handleListJobs))
	mux.HandleFunc("GET /v1/jobs/{id}", s.withMiddleware(s.handleGetJob))
	mux.HandleFunc("POST /v1/jobs/pause", s.withMiddleware(s.handlePauseJobs))
	mux.HandleFunc("POST /v1/jobs/resume", s.withMiddleware(s.handleResumeJobs))

	c := cors.New(cors.Options{
		AllowedOrigins:   s.deps.Settings.Get().CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(mux)
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Handler exposes the configured routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// llmClient returns the shared inference client, building it on first
// use. A model change alone switches the model on the existing client
// so the model cache survives; any other settings change rebuilds it.
func (s *Server) llmClient() (Client, error) {
	cfg := s.deps.Settings.Get()
	want := llm.Config{
		ServerURL:   cfg.ServerURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	s.clientMu.Lock()
	defer s.clientMu.Unlock()

	if s.client != nil {
		if want == s.clientCfg {
			return s.client, nil
		}
		conn := want
		conn.Model = s.clientCfg.Model
		if conn == s.clientCfg {
			s.client.SetModel(want.Model)
			s.clientCfg = want
			return s.client, nil
		}
	}

	client, err := s.deps.NewClient(want)
	if err != nil {
		return nil, err
	}
	s.client = client
	s.clientCfg = want
	return client, nil
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.SetReady(true)

	slog.Info("starting server", "addr", s.httpServer.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts the server with graceful shutdown on SIGINT/SIGTERM.
func Run(config *Config, deps *Dependencies) error {
	server, err := NewServer(config, deps)
	if err != nil {
		return err
	}

	slog.Info("server config",
		slog.String("address", server.httpServer.Addr),
		slog.Int("port", config.Port),
		slog.Any("rateLimit", config.RateLimit),
		slog.Int("rateLimitBurst", config.RateLimitBurst),
		slog.Duration("readTimeout", config.ReadTimeout),
		slog.Duration("writeTimeout", config.WriteTimeout),
		slog.Duration("idleTimeout", config.IdleTimeout),
		slog.Duration("shutdownTimeout", config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
