package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"velorace/internal/config"
	"velorace/internal/engine"
	"velorace/internal/metrics"
	"velorace/internal/store"
)

type Server struct {
	engine   *engine.Engine
	router   *mux.Router
	hub      *Hub
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
	timeout  time.Duration
}

// NewServer wires the HTTP API and the websocket hub onto eng. The hub is
// subscribed to every committed change; call the returned function to detach
// it.
func NewServer(eng *engine.Engine, cfg config.Config, log logrus.FieldLogger) (*Server, func()) {
	s := &Server{
		engine: eng,
		router: mux.NewRouter(),
		hub:    newHub(log),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log:     log,
		timeout: cfg.IOTimeout,
	}

	s.setupRoutes()
	go s.hub.run()
	unsubscribe := eng.Subscribe(s.hub.onChange)

	return s, unsubscribe
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/cravings", s.handleGetCravings).Methods("GET")
	api.HandleFunc("/cravings/{id}/purchase", s.handlePurchaseCraving).Methods("POST")

	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/logout", s.handleLogout).Methods("POST")

	api.HandleFunc("/activities", s.handleAddActivity).Methods("POST")
	api.HandleFunc("/activities/{id}", s.handleDeleteActivity).Methods("DELETE")

	api.HandleFunc("/events/{id}/join", s.handleJoinEvent).Methods("POST")
	api.HandleFunc("/users/{id}/follow", s.handleToggleFollow).Methods("POST")
	api.HandleFunc("/goals", s.handleUpdateGoals).Methods("PUT")
	api.HandleFunc("/showcase", s.handleUpdateShowcase).Methods("PUT")
	api.HandleFunc("/messages", s.handleSendMessage).Methods("POST")
	api.HandleFunc("/feed/{id}/like", s.handleLikeFeedItem).Methods("POST")
	api.HandleFunc("/notifications/read", s.handleMarkNotificationsRead).Methods("POST")
	api.HandleFunc("/notifications/{id}", s.handleDismissNotification).Methods("DELETE")

	s.router.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// scheduleEventSweep closes past community events on the configured cron
// schedule.
func scheduleEventSweep(eng *engine.Engine, schedule string, timeout time.Duration, log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := eng.CompletePastEvents(ctx)
		if err != nil {
			log.WithError(err).Error("Event sweep failed")
			return
		}
		if n > 0 {
			log.WithField("completed", n).Info("Completed past events")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule event sweep %q: %w", schedule, err)
	}
	return c, nil
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.IOTimeout)
	eng, err := engine.New(ctx, st, engine.WithLogger(log), engine.WithKey(cfg.StoreKey))
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to load document")
	}

	server, unsubscribe := NewServer(eng, cfg, log)
	defer unsubscribe()

	sweep, err := scheduleEventSweep(eng, cfg.EventSweep, cfg.IOTimeout, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to schedule event sweep")
	}
	sweep.Start()
	defer sweep.Stop()

	log.WithFields(logrus.Fields{
		"port":  cfg.Port,
		"store": cfg.Store,
	}).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, server.router); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
