// Command server exposes the Turkish morphological analyzer as a JSON REST
// API.
//
// Endpoints:
//
//	GET  /api/analyze?word=<token>
//	POST /api/analyze/text      body: {"text":"..."}
//	GET  /api/items[?id=<id>]
//	POST /api/items             body: {"line":"..."} or {"item":{...}}
//	POST /api/cache/invalidate
//	GET  /api/stats
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/az-ai-labs/tr-morph/internal/config"
	"github.com/az-ai-labs/tr-morph/morph"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// ---- JSON response types ------------------------------------------------

type analyzeTextResponse struct {
	Results []morph.TokenAnalysis `json:"results"`
}

type itemsResponse struct {
	Count int                     `json:"count"`
	Items []*morph.DictionaryItem `json:"items"`
}

type addItemRequest struct {
	Line string                `json:"line"`
	Item *morph.DictionaryItem `json:"item"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

type server struct {
	engine *morph.Engine
	logger *slog.Logger
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", slog.String("error", err.Error()))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, morph.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, morph.ErrDuplicateItem):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleAnalyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			s.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		wa, err := s.engine.AnalyzeContext(r.Context(), word)
		if err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, wa)
	}
}

func (s *server) handleAnalyzeText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			s.writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}
		results, err := s.engine.AnalyzeText(r.Context(), body.Text)
		if err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		if results == nil {
			results = []morph.TokenAnalysis{}
		}
		s.writeJSON(w, http.StatusOK, analyzeTextResponse{Results: results})
	}
}

func (s *server) handleItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.listItems(w, r)
		case http.MethodPost:
			s.addItem(w, r)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "GET or POST required")
		}
	}
}

func (s *server) listItems(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		item, ok := s.engine.Lookup(id)
		if !ok {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("item %q not found", id))
			return
		}
		s.writeJSON(w, http.StatusOK, item)
		return
	}
	items := s.engine.Items()
	s.writeJSON(w, http.StatusOK, itemsResponse{Count: len(items), Items: items})
}

func (s *server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	item := req.Item
	switch {
	case req.Line != "" && item != nil:
		s.writeError(w, http.StatusBadRequest, "set one of 'line' or 'item'")
		return
	case req.Line != "":
		var err error
		if item, err = morph.ParseLexiconLine(req.Line, nil); err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
	case item == nil:
		s.writeError(w, http.StatusBadRequest, "body must set 'line' or 'item'")
		return
	}

	if err := s.engine.AddDictionaryItem(item); err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	added, _ := s.engine.Lookup(item.ID())
	s.writeJSON(w, http.StatusCreated, added)
}

func (s *server) handleInvalidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		s.engine.InvalidateCache()
		s.writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	}
}

func (s *server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		s.writeJSON(w, http.StatusOK, s.engine.Stats())
	}
}

// newHandler returns the API mux wrapped in a CORS handler that admits
// origins.
func newHandler(e *morph.Engine, origins []string, logger *slog.Logger) http.Handler {
	s := &server{engine: e, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/text", s.handleAnalyzeText())
	mux.HandleFunc("/api/analyze", s.handleAnalyze())
	mux.HandleFunc("/api/items", s.handleItems())
	mux.HandleFunc("/api/cache/invalidate", s.handleInvalidate())
	mux.HandleFunc("/api/stats", s.handleStats())

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	})
	return c.Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	cfgPath := flag.String("config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)

	if err := serve(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	e, closeEngine, err := config.OpenEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeEngine(); err != nil {
			logger.Warn("close journal", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHandler(e, cfg.Server.AllowedOrigins, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
