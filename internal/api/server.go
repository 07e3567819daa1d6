package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/issa-compass/assistant/internal/editor"
)

const version = "1.0.0"

// ReplyGenerator is the rendering pipeline the HTTP layer calls into.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, clientMessage, historyText string) (string, error)
}

// TemplateEditor is the revision pipeline the HTTP layer calls into.
type TemplateEditor interface {
	CurrentPrompt(ctx context.Context) string
	ReviseFromExample(ctx context.Context, clientMessage, historyText, consultantReply, predictedReply string) editor.Result
	ReviseManually(ctx context.Context, instructions string) editor.Result
}

// PromptStore is the slice of the store the reset endpoint needs.
type PromptStore interface {
	UpdatePrompt(ctx context.Context, name, content string) bool
}

type Server struct {
	router   *chi.Mux
	port     int
	renderer ReplyGenerator
	editor   TemplateEditor
	store    PromptStore
	logger   *slog.Logger
}

func NewServer(port int, renderer ReplyGenerator, ed TemplateEditor, store PromptStore, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s := &Server{
		router:   router,
		port:     port,
		renderer: renderer,
		editor:   ed,
		store:    store,
		logger:   logger,
	}

	router.Get("/", s.info)
	router.Get("/health", s.health)
	router.Post("/generate-reply", s.generateReply)
	router.Post("/improve-ai", s.improveAI)
	router.Post("/improve-ai-manually", s.improveAIManually)
	router.Get("/get-prompt", s.getPrompt)
	router.Post("/reset-prompt", s.resetPrompt)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "assistant",
		"version": version,
		"endpoints": []string{
			"POST /generate-reply",
			"POST /improve-ai",
			"POST /improve-ai-manually",
			"GET /get-prompt",
			"POST /reset-prompt",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
