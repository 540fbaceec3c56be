package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avila-law/intake-platform/internal/booking"
	"github.com/avila-law/intake-platform/internal/intent"
	"github.com/avila-law/intake-platform/internal/llm"
	"github.com/avila-law/intake-platform/internal/observability/metrics"
	"github.com/avila-law/intake-platform/pkg/logging"
)

const historyContextLimit = 20

const systemPromptEN = "You are the intake assistant for Avila Law, a law firm handling immigration, personal injury, criminal defense, family law, and workers' compensation cases. Be warm and concise, never give legal advice, and offer to schedule a free consultation when the visitor describes a legal matter. Reply in English."

const systemPromptES = "Eres el asistente de admisión de Avila Law, un bufete que maneja casos de inmigración, lesiones personales, defensa criminal, derecho familiar y compensación laboral. Sé cálido y conciso, nunca des consejos legales y ofrece agendar una consulta gratuita cuando el visitante describa un asunto legal. Responde en español."

var fallbackReply = booking.Template{
	EN: "I'm sorry, I'm having trouble responding right now. Please call us at %s and we'll be happy to help.",
	ES: "Lo siento, estoy teniendo problemas para responder en este momento. Por favor llámenos al %s y con gusto le ayudaremos.",
}

// CompletionClient produces free-form assistant replies when no booking flow
// is active.
type CompletionClient interface {
	GenerateCompletion(ctx context.Context, messages []llm.Message) (string, error)
}

// BookingConfirmation is returned to the caller when a turn completes a
// booking.
type BookingConfirmation struct {
	AppointmentID      string `json:"appointment_id"`
	ConfirmationNumber string `json:"confirmation_number"`
}

// Reply is the outcome of one chat turn.
type Reply struct {
	SessionID string
	Message   string
	Booking   *BookingConfirmation
}

// Config holds the firm-specific chat settings.
type Config struct {
	DefaultLanguage string
	FirmPhone       string
}

// Service routes each inbound message to the booking flow or the LLM.
type Service struct {
	engine     *booking.Engine
	sessions   booking.SessionStore
	transcript TranscriptStore
	llm        CompletionClient
	cfg        Config
	metrics    *metrics.IntakeMetrics
	logger     *logging.Logger
}

// NewService creates the chat service. engine and sessions are required;
// transcript and llm may be nil for degraded environments.
func NewService(engine *booking.Engine, sessions booking.SessionStore, transcript TranscriptStore, completions CompletionClient, cfg Config, logger *logging.Logger) *Service {
	if engine == nil {
		panic("chat: booking engine is required")
	}
	if sessions == nil {
		panic("chat: session store is required")
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		engine:     engine,
		sessions:   sessions,
		transcript: transcript,
		llm:        completions,
		cfg:        cfg,
		logger:     logger,
	}
}

// UseMetrics attaches Prometheus instrumentation to the service.
func (s *Service) UseMetrics(m *metrics.IntakeMetrics) {
	s.metrics = m
}

// HandleMessage processes one user turn. A blank session id starts a new
// session; the returned Reply always carries the id the caller should reuse.
func (s *Service) HandleMessage(ctx context.Context, sessionID, message, language string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("chat: message is required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	lang := normalizeLanguage(language, s.cfg.DefaultLanguage)

	s.appendTranscript(ctx, sessionID, "user", message)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, booking.ErrSessionNotFound) {
		return nil, fmt.Errorf("chat: load session: %w", err)
	}

	var reply *Reply
	if session != nil {
		reply, err = s.continueBooking(ctx, session, message)
	} else {
		det := intent.Detect(message, intent.Language(lang))
		if det.HasIntent {
			session = booking.NewSession(sessionID, lang)
			s.engine.ApplyHints(session, det.Hints)
			reply, err = s.continueBooking(ctx, session, message)
		} else {
			reply, err = s.respondWithLLM(ctx, sessionID, lang)
		}
	}
	if err != nil {
		return nil, err
	}

	s.appendTranscript(ctx, sessionID, "assistant", reply.Message)
	return reply, nil
}

// History returns the most recent transcript messages for a session.
func (s *Service) History(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error) {
	if s.transcript == nil {
		return []TranscriptMessage{}, nil
	}
	return s.transcript.List(ctx, sessionID, limit)
}

func (s *Service) continueBooking(ctx context.Context, session *booking.Session, message string) (*Reply, error) {
	res, err := s.engine.HandleMessage(ctx, session, message)
	if err != nil {
		return nil, fmt.Errorf("chat: booking flow: %w", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("chat: failed to save booking session",
			"session_id", session.ID, "error", err)
	}
	s.metrics.ObserveChatMessage(session.Language, "booking")

	reply := &Reply{SessionID: session.ID, Message: res.Reply}
	if res.Booked {
		s.metrics.ObserveBooking(session.Language, "confirmed")
		reply.Booking = &BookingConfirmation{
			AppointmentID:      res.AppointmentID,
			ConfirmationNumber: res.ConfirmationNumber,
		}
	}
	return reply, nil
}

func (s *Service) respondWithLLM(ctx context.Context, sessionID, lang string) (*Reply, error) {
	s.metrics.ObserveChatMessage(lang, "llm")

	if s.llm == nil {
		return &Reply{SessionID: sessionID, Message: fallbackReply.Render(lang, s.cfg.FirmPhone)}, nil
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt(lang)}}
	history, err := s.History(ctx, sessionID, historyContextLimit)
	if err != nil {
		s.logger.Error("chat: failed to load history", "session_id", sessionID, "error", err)
	}
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Body})
	}

	text, err := s.llm.GenerateCompletion(ctx, messages)
	if err != nil {
		s.logger.Error("chat: completion failed", "session_id", sessionID, "error", err)
		return &Reply{SessionID: sessionID, Message: fallbackReply.Render(lang, s.cfg.FirmPhone)}, nil
	}
	return &Reply{SessionID: sessionID, Message: text}, nil
}

func (s *Service) appendTranscript(ctx context.Context, sessionID, role, body string) {
	if s.transcript == nil {
		return
	}
	if err := s.transcript.Append(ctx, sessionID, TranscriptMessage{Role: role, Body: body}); err != nil {
		s.logger.Error("chat: failed to append transcript",
			"session_id", sessionID, "role", role, "error", err)
	}
}

func systemPrompt(lang string) string {
	if lang == "es" {
		return systemPromptES
	}
	return systemPromptEN
}

func normalizeLanguage(lang, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "es":
		return "es"
	case "en":
		return "en"
	}
	if fallback == "es" {
		return "es"
	}
	return "en"
}
