// Package server provides the HTTP REST API for curriculum generation.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-ayala/edcube-mvp/internal/config"
	"github.com/m-ayala/edcube-mvp/internal/db"
	"github.com/m-ayala/edcube-mvp/internal/generator"
	"github.com/m-ayala/edcube-mvp/internal/llm"
	"github.com/m-ayala/edcube-mvp/internal/outline"
	"github.com/m-ayala/edcube-mvp/internal/search"
	"github.com/m-ayala/edcube-mvp/internal/selection"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	outliner   *outline.Generator
	generator  *generator.Generator
	llmClient  llm.Client
}

// New creates a new server instance wired to the external services named in
// the configuration.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required to run the server")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini_api_key is required to run the server")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Search clients are optional; population endpoints report a clear
	// error when the matching credential is missing.
	var videos selection.VideoSearcher
	if cfg.YouTubeAPIKey != "" {
		client, err := search.NewYouTubeClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			database.Close()
			return nil, err
		}
		videos = client
	}
	var images selection.ImageSearcher
	var pages selection.PageSearcher
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		client, err := search.NewCustomSearchClient(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			database.Close()
			return nil, err
		}
		images = client
		pages = client
	}

	s := &Server{
		db:        database,
		outliner:  outline.NewGenerator(llmClient),
		llmClient: llmClient,
	}
	s.generator = generator.New(llmClient, videos, images, pages, cfg, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /curricula", s.handleCreateCurriculum)
	mux.HandleFunc("GET /curricula", s.handleListCurricula)
	mux.HandleFunc("GET /curricula/{id}", s.handleGetCurriculum)
	mux.HandleFunc("DELETE /curricula/{id}", s.handleDeleteCurriculum)
	mux.HandleFunc("POST /curricula/{id}/populate", s.handlePopulateAll)
	mux.HandleFunc("POST /curricula/{id}/populate/stream", s.handlePopulateStream)
	mux.HandleFunc("POST /curricula/{id}/sections/{index}/videos", s.handlePopulateVideos)
	mux.HandleFunc("POST /curricula/{id}/sections/{index}/worksheets", s.handlePopulateWorksheets)
	mux.HandleFunc("POST /curricula/{id}/sections/{index}/activities", s.handlePopulateActivities)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second, // population runs are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
