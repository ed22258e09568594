package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/analyzer"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

const (
	defaultRequestTimeout = 90 * time.Second
	shutdownTimeout       = 5 * time.Second
	maxBodyBytes          = 1 << 20
)

// Options wires the server's dependencies.
type Options struct {
	Bind           string
	Chat           *chat.Service
	Analyzer       *analyzer.Analyzer
	Studio         *studio.Studio
	Dictionary     *explain.Dictionary
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	bind           string
	chat           *chat.Service
	analyzer       *analyzer.Analyzer
	studio         *studio.Studio
	dict           *explain.Dictionary
	requestTimeout time.Duration
	base           *slog.Logger
	logger         *slog.Logger

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New builds a server. Analyzer and Studio default to instances backed by Chat.
func New(opts Options) (*Server, error) {
	if opts.Chat == nil {
		return nil, errors.New("api: chat service is required")
	}
	s := &Server{
		bind:           strings.TrimSpace(opts.Bind),
		chat:           opts.Chat,
		analyzer:       opts.Analyzer,
		studio:         opts.Studio,
		dict:           opts.Dictionary,
		requestTimeout: opts.RequestTimeout,
		base:           opts.Logger,
		logger:         logging.NewComponentLogger(opts.Logger, "api"),
	}
	if s.dict == nil {
		s.dict = explain.Default()
	}
	if s.analyzer == nil {
		s.analyzer = analyzer.New(opts.Chat, opts.Logger, analyzer.WithDictionary(s.dict))
	}
	if s.studio == nil {
		s.studio = studio.New(opts.Chat, opts.Logger)
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/explain", s.handleExplain)
	mux.HandleFunc("/api/segment", s.handleSegment)
	mux.HandleFunc("/api/equations", s.handleEquations)
	mux.HandleFunc("/api/providers", s.handleProviders)
	mux.HandleFunc("/api/tools/flashcards", s.handleFlashcards)
	mux.HandleFunc("/api/tools/books", s.handleBooks)
	mux.HandleFunc("/api/tools/playlist", s.handlePlaylist)
	mux.HandleFunc("/api/tools/songs", s.handleSongs)
	mux.HandleFunc("/api/tools/convert", s.handleConvert)
	mux.HandleFunc("/api/tools/essay", s.handleEssay)
	mux.HandleFunc("/api/tools/feedback", s.handleFeedback)
	mux.HandleFunc("/api/tools/presentation", s.handlePresentation)
	mux.HandleFunc("/api/tools/story", s.handleStory)
	s.handler = s.withRequestContext(mux)

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.requestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// analyzerFor returns an analyzer pinned to provider.
func (s *Server) analyzerFor(provider string) *analyzer.Analyzer {
	return analyzer.New(s.chat, s.base, analyzer.WithProvider(provider), analyzer.WithDictionary(s.dict))
}

// Handler returns the routed handler with request middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr reports the bound listener address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Start listens on the bind address and serves in the background until ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api: bind address is required")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Run starts the server and blocks until ctx is cancelled and in-flight
// requests have drained.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	s.logger.Info("api server stopped")
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}
