package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/pkg/log"
)

type chatRequest struct {
	Message     string            `json:"message"`
	PageContext *core.PageContext `json:"page_context,omitempty"`
	UserType    string            `json:"user_type,omitempty"`
}

type chatResponse struct {
	Response  string    `json:"response"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	logger := log.FromCtx(r.Context())

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := s.coord.HandleTurn(r.Context(), sessionID, req.Message, req.PageContext, req.UserType)
	if err != nil {
		if errors.Is(err, core.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "Message must not be empty")
			return
		}
		logger.Error().Err(err).Str("session", sessionID).Msg("chat turn failed")
		writeError(w, http.StatusInternalServerError, "Failed to process chat request")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  reply,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	sess, err := s.store.GetOrCreate(r.Context(), sessionID)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("session", sessionID).Msg("history read failed")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve chat history")
		return
	}

	history := sess.Messages
	if history == nil {
		history = []core.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")

	if err := s.store.Delete(r.Context(), sessionID); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("session", sessionID).Msg("session delete failed")
		writeError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session cleared successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleCreateFlow(w http.ResponseWriter, r *http.Request) {
	var flow core.OnboardingFlow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.flows.Create(r.Context(), flow)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("flow create failed")
		writeError(w, http.StatusInternalServerError, "Failed to create onboarding flow")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	list, err := s.flows.List(r.Context())
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("flow list failed")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve onboarding flows")
		return
	}
	if list == nil {
		list = []core.OnboardingFlow{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
