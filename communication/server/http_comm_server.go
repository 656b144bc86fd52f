package server

import (
	"context"
	"domineering/communication"
	"domineering/searcher/agent"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Server exposes an agent over HTTP so a remote engine can ask it for
// moves.
type Server struct {
	agent agent.Agent
}

func New(a agent.Agent) *Server {
	return &Server{agent: a}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: "bad request: " + err.Error()})
		return
	}
	state, err := req.State()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: err.Error()})
		return
	}
	if state.Terminated() {
		writeJSON(w, http.StatusConflict, communication.ErrorResponse{Error: "game is over, " + state.Winner().String() + " has won"})
		return
	}

	move, metric, err := s.agent.FindMove(r.Context(), state)
	if err != nil {
		log.Warn().Err(err).Msg("agent failed to find a move")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Error: err.Error()})
		return
	}
	log.Debug().Msgf("%s plays %s after %d playouts", state.Player(), move, metric.Playouts)

	resp := communication.EncodeMove(move)
	resp.Playouts = metric.Playouts
	resp.Searcher = metric.Searcher
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
