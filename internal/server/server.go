package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
	"tripplanner/internal/metrics"
)

// SessionCookie carries the session id.
const SessionCookie = "tripplanner_session"

// Server routes API requests to the planning services.
type Server struct {
	sessions domain.SessionStore
	app      *app.App
	metrics  *metrics.Metrics
	logger   *slog.Logger
	router   *mux.Router
	now      func() time.Time
}

// New builds the router. m may be nil, in which case /metrics is not served.
func New(sessions domain.SessionStore, a *app.App, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sessions: sessions,
		app:      a,
		metrics:  m,
		logger:   logger.With("component", "server"),
		now:      time.Now,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.observe)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sidebar", s.handle(s.getSidebar)).Methods(http.MethodGet)

	api.HandleFunc("/trips", s.handle(s.listTrips)).Methods(http.MethodGet)
	api.HandleFunc("/trips", s.handle(s.createTrip)).Methods(http.MethodPost)
	api.HandleFunc("/trips/{name}/select", s.handle(s.selectTrip)).Methods(http.MethodPost)
	api.HandleFunc("/trips/{name}", s.handle(s.updateTrip)).Methods(http.MethodPut)

	api.HandleFunc("/plan", s.handle(s.getPlan)).Methods(http.MethodGet)

	api.HandleFunc("/itinerary", s.handle(s.getItinerary)).Methods(http.MethodGet)
	api.HandleFunc("/itinerary.ics", s.handle(s.getCalendar)).Methods(http.MethodGet)
	api.HandleFunc("/itinerary/days/{day:[0-9]+}", s.handle(s.saveDay)).Methods(http.MethodPut)

	api.HandleFunc("/budget", s.handle(s.getBudget)).Methods(http.MethodGet)
	api.HandleFunc("/budget/expenses", s.handle(s.addExpense)).Methods(http.MethodPost)
	api.HandleFunc("/budget/expenses/{index:[0-9]+}", s.handle(s.deleteExpense)).Methods(http.MethodDelete)

	api.HandleFunc("/favorites", s.handle(s.getFavorites)).Methods(http.MethodGet)
	api.HandleFunc("/favorites", s.handle(s.addFavorite)).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{index:[0-9]+}", s.handle(s.removeFavorite)).Methods(http.MethodDelete)

	api.HandleFunc("/packing", s.handle(s.getPacking)).Methods(http.MethodGet)
	api.HandleFunc("/packing", s.handle(s.addPackingItem)).Methods(http.MethodPost)
	api.HandleFunc("/packing/{index:[0-9]+}", s.handle(s.setPacked)).Methods(http.MethodPut)
	api.HandleFunc("/packing/{index:[0-9]+}", s.handle(s.removePackingItem)).Methods(http.MethodDelete)

	api.HandleFunc("/notes", s.handle(s.getNotes)).Methods(http.MethodGet)
	api.HandleFunc("/notes", s.handle(s.addNote)).Methods(http.MethodPost)
	api.HandleFunc("/notes/{index:[0-9]+}", s.handle(s.removeNote)).Methods(http.MethodDelete)

	api.HandleFunc("/advice/recommendations", s.handle(s.recommend)).Methods(http.MethodPost)
	api.HandleFunc("/advice/questions", s.handle(s.ask)).Methods(http.MethodPost)
	return r
}

// sessionHandler serves one request against the caller's session. A returned
// error is mapped to a status code and written as JSON.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *domain.Session) error

func (s *Server) handle(fn sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(w, r)
		if err != nil {
			s.logger.Error("session unavailable", "error", err)
			writeError(w, err)
			return
		}
		if err := fn(w, r, sess); err != nil {
			if statusOf(err) >= http.StatusInternalServerError {
				s.logger.Warn("request failed", "path", r.URL.Path, "session", sess.ID, "error", err)
			}
			writeError(w, err)
		}
	}
}

// session loads the caller's session, starting a new one when the cookie is
// missing, malformed or expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*domain.Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.sessions.LoadSession(domain.SessionID(id.String())); ok {
				return sess, nil
			}
		}
	}

	sess, err := s.sessions.CreateSession()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session started", "session", sess.ID)
	return sess, nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.CountSessions()})
}

// ListenAndServe serves s on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
