// Package httpapi serves path searches and catalog lookups over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/core"
	"github.com/katalvlaran/digipath/dataset"
	"github.com/katalvlaran/digipath/internal/logging"
	"github.com/katalvlaran/digipath/relay"
)

// Server holds the handler dependencies.
type Server struct {
	Dataset *dataset.Dataset
	Pool    *relay.Pool
	Logger  *slog.Logger

	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer

	// Timeout bounds how long POST /v1/paths waits; 0 means no limit.
	Timeout time.Duration
}

// NewHandler builds the router.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/paths", s.FindPath)
		r.Get("/digimon/{id}", s.GetDigimon)
		r.Get("/moves/{id}/learners", s.GetLearners)
		r.Get("/abi/advice", s.GetAdvice)
	})

	return r
}

// requestLogger logs one line per request and puts a request-scoped logger
// into the context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.Logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), log)))

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

// FindPath handles POST /v1/paths.
func (s *Server) FindPath(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req relay.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("FindPath: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	resp, err := s.Pool.Do(ctx, req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, relay.ErrInvalidRequest):
		log.Warn("FindPath: request rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the reply.
		log.Debug("FindPath: client gone", "error", err)
	default:
		log.Error("FindPath failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
	}
}

// digimonView is the GET /v1/digimon/{id} body.
type digimonView struct {
	core.Digimon
	Forward  []core.Evolution `json:"forward"`
	Backward []core.Evolution `json:"backward"`
}

// GetDigimon handles GET /v1/digimon/{id}.
func (s *Server) GetDigimon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g := s.Dataset.Graph

	d, ok := g.Digimon(id)
	if !ok {
		writeError(w, http.StatusNotFound, "digimon not found")
		return
	}

	writeJSON(w, http.StatusOK, digimonView{
		Digimon:  d,
		Forward:  nonNil(g.Forward(id)),
		Backward: nonNil(g.Backward(id)),
	})
}

// GetLearners handles GET /v1/moves/{id}/learners.
func (s *Server) GetLearners(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	writeJSON(w, http.StatusOK, map[string]any{
		"move":     id,
		"name":     s.Dataset.MoveName(id),
		"learners": s.Dataset.Graph.Learners(id),
	})
}

// GetAdvice handles GET /v1/abi/advice?stage=&level=.
func (s *Server) GetAdvice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stage, err := core.ParseStage(q.Get("stage"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := strconv.Atoi(q.Get("level"))
	if err != nil || level < 1 || level > 99 {
		writeError(w, http.StatusBadRequest, "level must be an integer in 1..99")
		return
	}

	writeJSON(w, http.StatusOK, abi.Optimal(s.Dataset.Exp, stage, level))
}

func nonNil(evs []core.Evolution) []core.Evolution {
	if evs == nil {
		return []core.Evolution{}
	}

	return evs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
