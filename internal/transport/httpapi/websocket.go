package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/pkg/log"
)

const welcomeText = "👋 Hi! I'm Aiden, your AI onboarding assistant. I'm here to help you navigate and understand your SaaS platform. What would you like to know?"

const turnErrorText = "I encountered an error. Please refresh and try again."

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

type inboundFrame struct {
	Message     string            `json:"message"`
	PageContext *core.PageContext `json:"page_context,omitempty"`
	UserType    string            `json:"user_type,omitempty"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// handleWebSocket runs the per-connection turn loop. Malformed frames and
// frames with an empty message are dropped without a reply; a failed turn
// produces an error frame and the connection stays open.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger.Info().Str("session", sessionID).Msg("websocket connected")

	if err := writeFrame(conn, "message", welcomeText); err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("failed to send welcome frame")
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info().Str("session", sessionID).Msg("websocket disconnected")
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Message == "" {
			continue
		}

		reply, err := s.coord.HandleTurn(ctx, sessionID, frame.Message, frame.PageContext, frame.UserType)
		if err != nil {
			logger.Error().Err(err).Str("session", sessionID).Msg("websocket turn failed")
			_ = writeFrame(conn, "error", turnErrorText)
			continue
		}

		if err := writeFrame(conn, "message", reply); err != nil {
			logger.Error().Err(err).Str("session", sessionID).Msg("failed to send reply frame")
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, frameType, content string) error {
	return conn.WriteJSON(outboundFrame{
		Type:      frameType,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
