// Package server provides the HTTP REST API over the toolkit: the ping
// proxy, experience CRUD, generation passthrough, version history and export.
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

	"github.com/go-playground/validator/v10"

	"github.com/gtri-thrive/toolkit/internal/config"
	"github.com/gtri-thrive/toolkit/internal/export"
	"github.com/gtri-thrive/toolkit/internal/genclient"
	"github.com/gtri-thrive/toolkit/internal/persona"
	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
	"github.com/gtri-thrive/toolkit/internal/versions"
)

// starGenerator is the slice of the generation client the handlers consume.
type starGenerator interface {
	Recommendations(ctx context.Context, req types.StarRequest) (types.Recommendations, error)
	Bullets(ctx context.Context, req types.StarRequest) (types.Bullets, error)
	Tailor(ctx context.Context, req types.StarRequest, targetPosition string) (types.Bullets, error)
}

// personaService is the slice of the persona client the handlers consume.
type personaService interface {
	Generate(ctx context.Context, form persona.IntakeForm, settings persona.GenerationSettings) (types.PersonaData, error)
	All(ctx context.Context) ([]types.PersonaData, error)
}

// experienceExporter renders a saved experience to an output format.
type experienceExporter interface {
	ExperiencePNG(ctx context.Context, exp types.SavedExperience) ([]byte, error)
	ExperiencePDF(ctx context.Context, exp types.SavedExperience) ([]byte, error)
	ExperienceDOCX(ctx context.Context, exp types.SavedExperience) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server

	experiences  *store.ExperienceStore
	tracker      *versions.Tracker
	generator    starGenerator
	personas     personaService
	personaStore *persona.Store
	exporter     experienceExporter

	backendURL string
	secretKey  string
	pingClient *http.Client

	validate *validator.Validate
}

// New creates a new server instance from the loaded configuration.
func New(cfg config.Config) (*Server, error) {
	kv, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}

	s := &Server{
		experiences:  store.NewExperienceStore(kv),
		tracker:      versions.NewTracker(kv),
		generator:    genclient.New(cfg.APIBaseURL, &genclient.Options{Timeout: cfg.Timeout()}),
		personas:     persona.NewClient(cfg.BackendURL, nil),
		personaStore: persona.NewStore(kv),
		exporter:     export.New(nil),
		backendURL:   cfg.BackendURL,
		secretKey:    cfg.SecretKey,
		pingClient:   &http.Client{Timeout: 10 * time.Second},
		validate:     validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.router())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // export captures can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// router wires the method-pattern routes.
func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/ping", s.handlePing)

	// Experience CRUD
	mux.HandleFunc("GET /experiences", s.handleListExperiences)
	mux.HandleFunc("POST /experiences", s.handleCreateExperience)
	mux.HandleFunc("GET /experiences/{id}", s.handleGetExperience)
	mux.HandleFunc("PUT /experiences/{id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /experiences/{id}", s.handleDeleteExperience)

	// Version history
	mux.HandleFunc("GET /experiences/{id}/versions", s.handleListVersions)
	mux.HandleFunc("POST /experiences/{id}/versions/{version_id}/revert", s.handleRevertVersion)

	// Generation passthrough for the draft phase
	mux.HandleFunc("POST /star/recommendations", s.handleStarRecommendations)
	mux.HandleFunc("POST /star/bullets", s.handleStarBullets)

	// Generation against a saved record
	mux.HandleFunc("POST /experiences/{id}/bullets/regenerate", s.handleRegenerateBullets)
	mux.HandleFunc("POST /experiences/{id}/bullets/tailor", s.handleTailorBullets)

	// Export
	mux.HandleFunc("GET /experiences/{id}/export", s.handleExportExperience)

	// Personas
	mux.HandleFunc("GET /personas", s.handleListPersonas)
	mux.HandleFunc("POST /personas/generate", s.handleGeneratePersona)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
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

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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

// handlePing proxies a health check to the persona backend with bearer auth.
// Any failure maps to {"status":"error"}; nothing propagates past here.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodHead, s.backendURL+"/health", nil)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.pingClient.Do(req)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}
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
