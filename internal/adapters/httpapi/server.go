// Package httpapi exposes the turn handler over HTTP so the skill can run
// behind any webhook-style fulfillment endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redzonehq/redzone/internal/alexa"
	"github.com/redzonehq/redzone/internal/application"
	"github.com/redzonehq/redzone/internal/domain"
)

// Server serves request envelopes posted by the voice platform.
type Server struct {
	turns  *application.TurnService
	logger *slog.Logger
}

func NewServer(turns *application.TurnService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{turns: turns, logger: logger}
}

// Register wires the server endpoints onto the provided mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/turn", s.handleTurn)
	mux.HandleFunc("/healthz", s.handleHealth)
}

// ListenAndServe blocks serving on addr until ctx is canceled, then shuts
// the listener down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.Register(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event alexa.RequestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, fmt.Sprintf("invalid body: %v", err), http.StatusBadRequest)
		return
	}

	envelope, err := s.turns.HandleEvent(r.Context(), event)
	if err != nil {
		s.logger.Error("handle turn", "error", err)
		http.Error(w, fmt.Sprintf("handle turn: %v", err), statusFor(err))
		return
	}

	if envelope == nil || envelope.Response == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// statusFor maps handler failures onto response codes: caller mistakes in
// the event payload are distinguishable from our own faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingSlot),
		errors.Is(err, domain.ErrBadDate),
		errors.Is(err, domain.ErrUnknownIntent),
		errors.Is(err, domain.ErrUnknownRequestType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
