// Package httpapi expose une session au lecteur (overlay navigateur ou autre) via une API JSON.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/patrickprogramme/hearlingo/internal/app"
	"github.com/patrickprogramme/hearlingo/internal/player"
)

// Server : une session par serveur. Les commandes émises vers la surface
// virtuelle (seek, pause) sont renvoyées au client dans chaque réponse.
type Server struct {
	session *app.Session
	surface *player.Virtual
	log     *zap.SugaredLogger
	title   string

	router *mux.Router
	server *http.Server
}

type Option func(*Server)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTitle fixe le titre utilisé pour le transcript (identifiant vidéo à défaut).
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

func NewServer(session *app.Session, surface *player.Virtual, opts ...Option) *Server {
	s := &Server{
		session: session,
		surface: surface,
		log:     zap.NewNop().Sugar(),
		router:  mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Infow("http api listening", "addr", addr, "session", s.session.ID())
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)

	api.HandleFunc("/navigate", s.handleNavigate).Methods(http.MethodPost)
	api.HandleFunc("/tracks", s.handleTracks).Methods(http.MethodGet)
	api.HandleFunc("/track", s.handleSelectTrack).Methods(http.MethodPost)
	api.HandleFunc("/cues", s.handleCues).Methods(http.MethodGet)
	api.HandleFunc("/cues/active", s.handleActiveCue).Methods(http.MethodGet)
	api.HandleFunc("/cues/{index:-?[0-9]+}/click", s.handleClick).Methods(http.MethodPost)
	api.HandleFunc("/events", s.handleEvent).Methods(http.MethodPost)
	api.HandleFunc("/panel/toggle", s.handleTogglePanel).Methods(http.MethodPost)
	api.HandleFunc("/loop", s.handleSubmitLoop).Methods(http.MethodPut)
	api.HandleFunc("/loop", s.handleStopLoop).Methods(http.MethodDelete)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/transcript", s.handleTranscript).Methods(http.MethodGet)
}

// logRequests journalise chaque requête au niveau debug.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugw("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
