// Package web serves the score form and a JSON API over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/predictor"
	"github.com/uyouii/score-predictor/session"
	"go.uber.org/zap"
)

type Config struct {
	Addr          string
	DefaultScores string
	Logger        *zap.Logger
}

// Server owns the single interactive session. Requests are served one at a
// time against it.
type Server struct {
	cfg       Config
	srv       *http.Server
	logger    *zap.Logger
	tmpl      *template.Template
	predictor *predictor.Predictor

	mu    sync.Mutex
	state *session.State
}

func New(cfg Config, p *predictor.Predictor) (*Server, error) {
	if p == nil {
		return nil, errors.New("web: nil predictor")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.L()
	}
	if cfg.DefaultScores == "" {
		cfg.DefaultScores = predictor.DefaultScores
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		logger:    cfg.Logger,
		tmpl:      tmpl,
		predictor: p,
		state:     session.NewState(),
	}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.srv.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) predict(ctx context.Context, raw string, in session.Input) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictor.Predict(ctx, raw, s.state, in)
}

func (s *Server) resetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset()
}
