// Package server exposes the design generation HTTP surface.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"beadatelier/internal/quota"
	"beadatelier/internal/util"
	"beadatelier/pkg/ai"
	"beadatelier/pkg/catalog"
	"beadatelier/pkg/domain"
	"beadatelier/services/design/internal/app"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App     *app.App
	Catalog *catalog.Catalog
	// Quota is the optional shared daily limit guard; nil leaves quota
	// enforcement to the client.
	Quota          *quota.RedisDayLimiter
	TrustForwarded bool
}

// Server exposes HTTP endpoints for the design service.
type Server struct {
	app            *app.App
	catalog        *catalog.Catalog
	quota          *quota.RedisDayLimiter
	trustForwarded bool
	mux            *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, fmt.Errorf("app required")
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Server{
		app:            cfg.App,
		catalog:        cat,
		quota:          cfg.Quota,
		trustForwarded: cfg.TrustForwarded,
		mux:            http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// catalog
	s.mux.HandleFunc("/api/brooches", s.handleBrooches)
	s.mux.HandleFunc("/api/brooches/", s.handleBroochByID)
	s.mux.HandleFunc("/api/options", s.handleOptions)

	// generation
	s.mux.HandleFunc("/api/generate", s.handleGenerate)
	s.mux.HandleFunc("/api/generated/", s.handleGenerated)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBrooches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.ListAll())
}

func (s *Server) handleBroochByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/brooches/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Brooch not found")
		return
	}
	product, ok := s.catalog.GetByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Brooch not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleOptions serves the option tables the generator UI is built from.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sizes":  domain.SizeOptions,
		"shapes": domain.ShapeCategories,
		"colors": domain.ColorOptions,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.quota != nil && !s.quota.Allow(util.ClientIP(r, s.trustForwarded)) {
		writeError(w, http.StatusTooManyRequests, "Daily generation limit reached")
		return
	}

	var params domain.GenerateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	artifact, err := s.app.Submit(r.Context(), params)
	if err != nil {
		s.writeGenerateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

func (s *Server) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	logger := util.LoggerFromContext(r.Context())

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid request",
			"details": verr.Fields,
		})
		return
	}

	// Provider diagnostics are logged but never shown verbatim to clients.
	var perr *ai.ProviderError
	if errors.As(err, &perr) {
		logger.Error("image generation failed", "err", perr)
		writeError(w, http.StatusInternalServerError, "Image generation failed")
		return
	}
	logger.Error("generate request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "Failed to generate brooch design")
}

// handleGenerated serves /api/generated/{id} and /api/generated/{id}/image.
func (s *Server) handleGenerated(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/generated/")
	id, suffix, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "Generated brooch not found")
		return
	}
	switch suffix {
	case "":
		s.serveGeneratedRecord(w, r, id)
	case "image":
		s.serveGeneratedImage(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Generated brooch not found")
	}
}

func (s *Server) serveGeneratedRecord(w http.ResponseWriter, r *http.Request, id string) {
	artifact, err := s.app.GetArtifact(id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

func (s *Server) serveGeneratedImage(w http.ResponseWriter, r *http.Request, id string) {
	data, contentType, err := s.app.ArtifactImage(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrArtifactNotFound) {
		writeError(w, http.StatusNotFound, "Generated brooch not found")
		return
	}
	util.LoggerFromContext(r.Context()).Error("artifact lookup failed", "err", err)
	writeError(w, http.StatusInternalServerError, "Failed to fetch generated brooch")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
