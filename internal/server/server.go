package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/config"
	"github.com/Benny9193/Family-App/internal/handler"
	"github.com/Benny9193/Family-App/internal/middleware"
	"github.com/Benny9193/Family-App/internal/store"
	"github.com/Benny9193/Family-App/internal/upload"
)

type Server struct {
	db           *sql.DB
	tokens       *auth.Tokens
	uploads      *upload.Manager
	clientOrigin string
	authH        *handler.AuthHandler
	familyH      *handler.FamilyHandler
	eventH       *handler.EventHandler
	todoH        *handler.TodoHandler
	noteH        *handler.NoteHandler
	uploadH      *handler.UploadHandler
	logger       *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	tokens := auth.NewTokens(cfg.JWTSecret)

	uploads, err := upload.NewManager(cfg.UploadDir, logger.With("component", "upload"))
	if err != nil {
		return nil, err
	}

	userStore := store.NewUserStore(db)
	familyStore := store.NewFamilyStore(db)
	eventStore := store.NewEventStore(db)
	todoStore := store.NewTodoStore(db)
	noteStore := store.NewNoteStore(db)
	attachmentStore := store.NewAttachmentStore(db)

	return &Server{
		db:           db,
		tokens:       tokens,
		uploads:      uploads,
		clientOrigin: cfg.ClientOrigin,
		authH:        handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		familyH:      handler.NewFamilyHandler(familyStore, logger.With("component", "family")),
		eventH:       handler.NewEventHandler(eventStore, familyStore, logger.With("component", "calendar")),
		todoH:        handler.NewTodoHandler(todoStore, familyStore, logger.With("component", "todo")),
		noteH:        handler.NewNoteHandler(noteStore, attachmentStore, familyStore, uploads, logger.With("component", "note")),
		uploadH:      handler.NewUploadHandler(userStore, noteStore, attachmentStore, familyStore, uploads, logger.With("component", "upload")),
		logger:       logger,
	}, nil
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.authH.Register)
	outerMux.HandleFunc("POST /api/auth/login", s.authH.Login)
	outerMux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploads.Dir()))))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Everything else under /api/ requires a valid token.
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/api/", authMiddleware(protectedMux))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.clientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.RequestLogger(s.logger.With("component", "http"))(corsHandler(outerMux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Family routes
	mux.HandleFunc("GET /api/family", s.familyH.List)
	mux.HandleFunc("POST /api/family", s.familyH.Create)
	mux.HandleFunc("POST /api/family/join", s.familyH.Join)
	mux.HandleFunc("GET /api/family/{familyId}/members", s.familyH.Members)

	// Calendar event routes
	mux.HandleFunc("GET /api/calendar/{familyId}", s.eventH.List)
	mux.HandleFunc("POST /api/calendar", s.eventH.Create)
	mux.HandleFunc("PUT /api/calendar/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/calendar/{id}", s.eventH.Delete)

	// Todo routes
	mux.HandleFunc("GET /api/todos/{familyId}", s.todoH.List)
	mux.HandleFunc("POST /api/todos", s.todoH.Create)
	mux.HandleFunc("PUT /api/todos/{id}", s.todoH.Update)
	mux.HandleFunc("PATCH /api/todos/{id}/toggle", s.todoH.Toggle)
	mux.HandleFunc("DELETE /api/todos/{id}", s.todoH.Delete)

	// Note routes
	mux.HandleFunc("GET /api/notes/{familyId}", s.noteH.List)
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	// Upload routes
	mux.HandleFunc("POST /api/upload/avatar", s.uploadH.Avatar)
	mux.HandleFunc("POST /api/upload/attachment/{noteId}", s.uploadH.Attachment)
	mux.HandleFunc("GET /api/upload/attachments/{noteId}", s.uploadH.ListAttachments)
	mux.HandleFunc("DELETE /api/upload/attachment/{id}", s.uploadH.DeleteAttachment)
}
