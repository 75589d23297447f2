// Package httpapi exposes the chat gateway over REST and WebSocket. Both
// transports translate frames into Session Coordinator turns; many turns
// for many sessions run concurrently with no global serialization.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/internal/service/chat"
	"github.com/sandevgo/aiden/internal/service/flows"
	"github.com/sandevgo/aiden/pkg/log"
)

type Server struct {
	addr    string
	coord   *chat.Coordinator
	store   core.SessionStore
	flows   *flows.Service
	httpSrv *http.Server
}

func NewServer(addr string, coord *chat.Coordinator, store core.SessionStore, flowsSvc *flows.Service) *Server {
	return &Server{
		addr:  addr,
		coord: coord,
		store: store,
		flows: flowsSvc,
	}
}

// Handler builds the full route table. Split from Start so tests can mount
// it on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/chat/{session_id}", s.handleChat)
	mux.HandleFunc("GET /api/session/{session_id}/history", s.handleHistory)
	mux.HandleFunc("DELETE /api/session/{session_id}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/ws/{session_id}", s.handleWebSocket)
	mux.HandleFunc("POST /api/onboarding-flows", s.handleCreateFlow)
	mux.HandleFunc("GET /api/onboarding-flows", s.handleListFlows)
	return withCORS(mux)
}

func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			// Carries the process logger into every request context.
			return ctx
		},
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting http api")

	if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
