// Package api serves the state of the frame clock and the LED controller over
// HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/matt-g-everett/rxanim/led"
)

// ClockState reports the lifecycle of a frame clock.
type ClockState interface {
	Subscribers() int
	Running() bool
}

// ControllerState reports what is being rendered.
type ControllerState interface {
	Status() led.Status
}

// Clock is the clock section of a Status.
type Clock struct {
	Running     bool `json:"running"`
	Subscribers int  `json:"subscribers"`
}

// Status is the body of /status.
type Status struct {
	Clock  Clock      `json:"clock"`
	Led    led.Status `json:"led"`
	Uptime string     `json:"uptime"`
}

// Server answers /status requests.
type Server struct {
	clock      ClockState
	controller ControllerState
	logger     *slog.Logger
	started    time.Time
	mux        *http.ServeMux
}

// NewServer creates an instance of a Server.
func NewServer(clock ClockState, controller ControllerState, logger *slog.Logger) *Server {
	s := new(Server)
	s.clock = clock
	s.controller = controller
	s.logger = logger
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.started = time.Now()
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/status", s.handleStatus)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Status collects the current state.
func (s *Server) Status() Status {
	return Status{
		Clock: Clock{
			Running:     s.clock.Running(),
			Subscribers: s.clock.Subscribers(),
		},
		Led:    s.controller.Status(),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Status()); err != nil {
		s.logger.Warn("status not sent", slog.Any("err", err))
	}
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})
	defer stop()

	s.logger.Info("listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
