package server

import (
	"net/http"

	"notifysvc/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness reports whether the broker subscription has ever successfully
// started. Liveness is implicit: the process answers /health at all.
type Readiness interface {
	Ready() bool
}

type Server struct {
	App            *chi.Mux
	ServerInstance *http.Server
	ready          Readiness
}

func New(port string, ready Readiness) *Server {
	r := chi.NewRouter()

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	s := &Server{
		App:            r,
		ServerInstance: server,
		ready:          ready,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.App.Use(chimiddleware.RequestID)
	s.App.Use(middleware.RequestLogger)
	s.App.Use(middleware.Recoverer)

	s.App.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Notification Service Running"))
	})

	s.App.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.App.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if s.ready.Ready() {
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	s.App.Handle("/metrics", promhttp.Handler())
}
