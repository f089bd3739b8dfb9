// Package server is the thin HTTP shell over the analysis pipeline: the
// surface a browser UI talks to. It renders pipeline outcomes and owns no
// analysis logic of its own.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/pipeline"
)

// maxUploadBytes bounds multipart image uploads at the transport layer;
// the image extractor enforces its own limit as well.
const maxUploadBytes = 12 << 20

// Server serves the analysis API.
type Server struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	cfg      model.ServerConfig

	registry *prometheus.Registry
	analyses *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a server around a pipeline. Each server carries its own
// metrics registry so construction is repeatable.
func New(p *pipeline.Pipeline, logger *zap.Logger, cfg model.ServerConfig) *Server {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Server{
		pipeline: p,
		logger:   logger,
		cfg:      cfg,
		registry: registry,
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "veracity_analyses_total",
			Help: "Analysis requests by terminal outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "veracity_analysis_duration_seconds",
			Help:    "End-to-end analysis duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until it fails or the process exits.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
	return srv.ListenAndServe()
}

// analyzeRequest is the JSON body for text and URL analysis.
type analyzeRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := s.pipeline.Analyze(r.Context(), input)
	s.duration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		// Expected rejection: a warning, never a partial result.
		s.analyses.WithLabelValues("rejected").Inc()
		s.writeError(w, http.StatusBadRequest,
			"Please provide valid news content (not greetings or very short text).")
		return

	case err != nil:
		s.analyses.WithLabelValues("failed").Inc()
		s.logger.Error("analysis failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.analyses.WithLabelValues("done").Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeInput maps a request body onto exactly one RawInput variant:
// multipart uploads carry an image, JSON bodies carry text or a URL.
func decodeInput(r *http.Request) (model.RawInput, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return model.RawInput{}, errors.New("invalid multipart upload")
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return model.RawInput{}, errors.New("multipart upload missing image field")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return model.RawInput{}, errors.New("unreadable image upload")
		}
		return model.ImageInput(data), nil
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.RawInput{}, errors.New("invalid JSON body")
	}

	switch {
	case req.Text != "" && req.URL != "":
		return model.RawInput{}, errors.New("provide exactly one of text or url")
	case req.URL != "":
		return model.URLInput(req.URL), nil
	case req.Text != "":
		return model.TextInput(req.Text), nil
	default:
		return model.RawInput{}, errors.New("provide one of text, url, or an image upload")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// logRequests logs one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
