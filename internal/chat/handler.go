package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avila-law/intake-platform/pkg/logging"
)

// Handler exposes the chat service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a chat HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("chat: service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Language  string `json:"language"`
}

type messageResponse struct {
	Reply     string               `json:"reply"`
	SessionID string               `json:"session_id"`
	Booking   *BookingConfirmation `json:"booking,omitempty"`
}

type historyMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// HandleMessage processes one chat turn.
// POST /chat/message
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.HandleMessage(r.Context(), req.SessionID, req.Message, req.Language)
	if err != nil {
		h.logger.Error("chat: failed to handle message",
			"session_id", req.SessionID, "error", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(messageResponse{
		Reply:     reply.Message,
		SessionID: reply.SessionID,
		Booking:   reply.Booking,
	})
}

// HandleHistory returns the transcript for a session.
// GET /chat/history?session=<id>
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	msgs, err := h.service.History(r.Context(), sessionID, 100)
	if err != nil {
		h.logger.Error("chat: failed to load history", "session_id", sessionID, "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	history := make([]historyMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, historyMessage{
			Role:      m.Role,
			Text:      m.Body,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"messages": history})
}
