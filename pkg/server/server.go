// Package server exposes the trace engine over HTTP.
//
// Routes:
//
//	GET  /                HTML page listing the algorithm catalog
//	GET  /algorithms      catalog as JSON
//	POST /generate_array  {"size": n, "type": mode} -> {"array": [...]}
//	POST /sort            {"algorithm": tag, "array": [...]} -> trace payload
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dshills/sortviz/pkg/domain/types"
	operr "github.com/dshills/sortviz/pkg/errors"
	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/export"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/dshills/sortviz/pkg/validation"
)

//go:embed templates/index.html
var templateFS embed.FS

// maxBodyBytes bounds request bodies; max_array_size elements fit comfortably.
const maxBodyBytes = 1 << 20

// Config holds server settings.
type Config struct {
	// DefaultSize is used by /generate_array when the body omits "size".
	DefaultSize int
	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings the CLI uses when none are configured.
func DefaultConfig() Config {
	return Config{
		DefaultSize:     10,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves the HTTP API.
type Server struct {
	engine    *execution.Engine
	generator *sorting.Generator
	config    Config
	index     *template.Template
	mux       *http.ServeMux
}

// New creates a Server backed by engine and generator.
func New(engine *execution.Engine, generator *sorting.Generator, cfg Config) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if generator == nil {
		generator = sorting.NewGenerator(nil)
	}
	if cfg.DefaultSize <= 0 {
		cfg.DefaultSize = DefaultConfig().DefaultSize
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	index, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	s := &Server{
		engine:    engine,
		generator: generator,
		config:    cfg,
		index:     index,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /algorithms", s.handleAlgorithms)
	s.mux.HandleFunc("POST /generate_array", s.handleGenerate)
	s.mux.HandleFunc("POST /sort", s.handleSort)

	return s, nil
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Algorithms   []sorting.Descriptor
		Selected     types.AlgorithmTag
		DefaultSize  int
		MaxArraySize int
	}{
		Algorithms:   sorting.Catalog(),
		Selected:     types.BubbleSort,
		DefaultSize:  s.config.DefaultSize,
		MaxArraySize: s.engine.MaxArraySize(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		log.Printf("Warning: failed to render index: %v", err)
	}
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sorting.Catalog())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, operr.NewOperationalError("generate_array", "", "", err))
		return
	}

	req, err := validation.ParseGenerateRequest(body, s.config.DefaultSize)
	if err != nil {
		s.writeError(w, operr.NewOperationalError("generate_array", "", "", err))
		return
	}

	size := min(req.Size, s.engine.MaxArraySize())
	mode, _ := sorting.ParseMode(req.Mode)

	values, err := s.generator.Generate(size, mode)
	if err != nil {
		s.writeError(w, operr.NewOperationalError("generate_array", "", "", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string][]int{"array": values})
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, operr.NewOperationalError("sort", "", "", err))
		return
	}

	req, err := validation.ParseSortRequest(body)
	if err != nil {
		s.writeError(w, operr.NewOperationalError("sort", "", "", err))
		return
	}

	algorithm := types.AlgorithmTag(req.Algorithm)
	result, err := s.engine.Execute(r.Context(), execution.Request{
		Algorithm: req.Algorithm,
		Values:    req.Values,
	})
	if err != nil {
		s.writeError(w, operr.NewOperationalErrorWithAttrs("sort", algorithm, "", err,
			map[string]interface{}{"input_size": len(req.Values)}))
		return
	}

	writeJSON(w, http.StatusOK, export.NewPayload(result.Trace, result.Execution.ID))
}

// writeError maps err to a status code and a {"error": message} body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %v", err)
	} else {
		log.Printf("Request rejected (%d): %v", status, err)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func classify(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, sorting.ErrUnknownAlgorithm):
		return http.StatusNotFound, "Algorithm not found"
	case errors.Is(err, execution.ErrArrayTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "Array too large"
	case errors.Is(err, validation.ErrInvalidInput), errors.Is(err, validation.ErrInvalidRequest):
		return http.StatusBadRequest, rootMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// rootMessage returns the message of the innermost wrapped validation error.
func rootMessage(err error) string {
	var inputErr *validation.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Error()
	}
	var opErr *operr.OperationalError
	if errors.As(err, &opErr) && opErr.Cause != nil {
		return opErr.Cause.Error()
	}
	return err.Error()
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: failed to write response: %v", err)
	}
}
