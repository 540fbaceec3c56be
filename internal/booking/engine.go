package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avila-law/intake-platform/internal/crm"
	"github.com/avila-law/intake-platform/internal/intent"
	"github.com/avila-law/intake-platform/pkg/logging"
)

// CRM is the slice of the CRM client the engine needs to commit a booking.
type CRM interface {
	GetOrCreateContact(ctx context.Context, in crm.UpsertContactInput) (*crm.Contact, error)
	ScheduleMeeting(ctx context.Context, in crm.ScheduleMeetingInput) (*crm.Appointment, error)
	SendMessage(ctx context.Context, in crm.SendMessageInput) error
	CreateTask(ctx context.Context, in crm.CreateTaskInput) error
	CreateOpportunity(ctx context.Context, in crm.CreateOpportunityInput) error
}

// Result is the engine's answer for one user turn.
type Result struct {
	Reply              string
	Booked             bool
	AppointmentID      string
	ConfirmationNumber string
	SelectedSlot       *AvailableSlot
}

// Config holds the firm-specific settings the engine needs.
type Config struct {
	FirmPhone        string
	Timezone         string
	PipelineID       string
	StageID          string
	OpportunityValue float64
}

// Engine drives the slot-filling booking conversation. It is stateless
// itself; all conversation state lives in the Session passed to
// HandleMessage.
type Engine struct {
	crm      CRM
	slots    SlotSource
	cfg      Config
	location *time.Location
	logger   *logging.Logger
	now      func() time.Time
}

// NewEngine creates a booking engine. crmClient and slots are required.
func NewEngine(crmClient CRM, slots SlotSource, cfg Config, logger *logging.Logger) *Engine {
	if crmClient == nil {
		panic("booking: crm client is required")
	}
	if slots == nil {
		panic("booking: slot source is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Engine{
		crm:      crmClient,
		slots:    slots,
		cfg:      cfg,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

// ApplyHints seeds session fields from extracted scheduling hints. Hints
// never overwrite values the user already provided.
func (e *Engine) ApplyHints(session *Session, hints intent.Hints) {
	if session.PracticeArea == "" && hints.PracticeArea != "" {
		session.PracticeArea = hints.PracticeArea
	}
	if hints.Urgency == "urgent" {
		session.Urgency = "urgent"
	}
	if session.PreferredTime == "" && hints.PreferredTime != "" {
		session.PreferredTime = hints.PreferredTime
	}
}

// HandleMessage advances the session with one user turn and returns the
// localized reply. Validation failures re-prompt without advancing;
// external failures during commit leave the session intact so the user can
// retry.
func (e *Engine) HandleMessage(ctx context.Context, session *Session, message string) (*Result, error) {
	if session == nil {
		return nil, fmt.Errorf("booking: session is required")
	}
	lang := session.Language

	switch session.LastStep {
	case StepNone:
		return e.askNext(ctx, session)

	case StepFirstName:
		name, ok := ValidateName(message)
		if !ok {
			return &Result{Reply: render("askFirstName", lang)}, nil
		}
		if session.FirstName == "" {
			session.FirstName = name
		}
		return e.askNext(ctx, session)

	case StepLastName:
		name, ok := ValidateName(message)
		if !ok {
			return &Result{Reply: render("askLastName", lang, session.FirstName)}, nil
		}
		if session.LastName == "" {
			session.LastName = name
		}
		return e.askNext(ctx, session)

	case StepEmail:
		email, ok := ValidateEmail(message)
		if !ok {
			return &Result{Reply: render("invalidEmail", lang)}, nil
		}
		if session.Email == "" {
			session.Email = email
		}
		return e.askNext(ctx, session)

	case StepPhone:
		phone, ok := NormalizePhone(message)
		if !ok {
			return &Result{Reply: render("invalidPhone", lang)}, nil
		}
		if session.Phone == "" {
			session.Phone = phone
		}
		return e.askNext(ctx, session)

	case StepPracticeArea:
		if area := intent.MatchPracticeArea(message); area != "" {
			session.PracticeArea = area
		}
		if session.PracticeArea == "" {
			return &Result{Reply: render("invalidPracticeArea", lang)}, nil
		}
		return e.askNext(ctx, session)

	case StepSelectSlot:
		n, ok := ParseSlotSelection(message, len(session.AvailableSlots))
		if !ok {
			return &Result{Reply: render("invalidSlotSelection", lang, len(session.AvailableSlots))}, nil
		}
		slot := session.AvailableSlots[n-1]
		session.SelectedSlot = &slot
		return e.commit(ctx, session)

	case StepBooked:
		return &Result{Reply: render("alreadyBooked", lang, e.cfg.FirmPhone)}, nil
	}

	return nil, fmt.Errorf("booking: unknown step %q", session.LastStep)
}

// askNext asks for the first missing field, or fetches and presents slots
// once all fields are filled.
func (e *Engine) askNext(ctx context.Context, session *Session) (*Result, error) {
	lang := session.Language

	switch {
	case session.FirstName == "":
		session.advanceTo(StepFirstName)
		return &Result{Reply: render("askFirstName", lang)}, nil
	case session.LastName == "":
		session.advanceTo(StepLastName)
		return &Result{Reply: render("askLastName", lang, session.FirstName)}, nil
	case session.Email == "":
		session.advanceTo(StepEmail)
		return &Result{Reply: render("askEmail", lang)}, nil
	case session.Phone == "":
		session.advanceTo(StepPhone)
		return &Result{Reply: render("askPhone", lang)}, nil
	case session.PracticeArea == "":
		session.advanceTo(StepPracticeArea)
		return &Result{Reply: render("askPracticeArea", lang)}, nil
	}

	return e.presentSlots(ctx, session)
}

func (e *Engine) presentSlots(ctx context.Context, session *Session) (*Result, error) {
	lang := session.Language
	start := e.now().In(e.location)
	end := start.AddDate(0, 0, slotHorizonDays)

	fetched, err := e.slots.AvailableSlots(ctx, start, end)
	if err != nil {
		e.logger.Error("booking: slot fetch failed", "session_id", session.ID, "error", err)
		return &Result{Reply: render("noSlots", lang, e.cfg.FirmPhone)}, nil
	}

	offered := presentable(fetched, session.PreferredTime)
	if len(offered) == 0 {
		e.logger.Warn("booking: no slots available", "session_id", session.ID)
		return &Result{Reply: render("noSlots", lang, e.cfg.FirmPhone)}, nil
	}

	session.AvailableSlots = offered
	session.advanceTo(StepSelectSlot)
	return &Result{Reply: render("slotsHeader", lang, formatSlotList(offered, lang))}, nil
}

// commit books the selected slot: contact upsert, calendar event, and
// confirmation SMS. Opportunity creation is best-effort and never fails
// the booking.
func (e *Engine) commit(ctx context.Context, session *Session) (*Result, error) {
	lang := session.Language
	slot := session.SelectedSlot

	contact, err := e.crm.GetOrCreateContact(ctx, crm.UpsertContactInput{
		FirstName: session.FirstName,
		LastName:  session.LastName,
		Email:     session.Email,
		Phone:     session.Phone,
		Tags:      []string{"chat-booking", session.PracticeArea},
		CustomFields: map[string]string{
			"language":      session.Language,
			"practice_area": session.PracticeArea,
			"urgency":       session.Urgency,
			"notes":         session.Notes,
		},
	})
	if err != nil {
		return e.failCommit(session, "contact upsert", err), nil
	}

	startTime, err := slotStart(*slot, e.location)
	if err != nil {
		return e.failCommit(session, "slot time", err), nil
	}
	endTime := startTime.Add(consultationMinutes * time.Minute)

	title := fmt.Sprintf("%s Consultation - %s %s", practiceAreaTitle(session.PracticeArea), session.FirstName, session.LastName)
	appt, err := e.crm.ScheduleMeeting(ctx, crm.ScheduleMeetingInput{
		CalendarID: slot.CalendarID,
		ContactID:  contact.ID,
		Title:      title,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     "confirmed",
		Notes:      session.Notes,
	})
	if err != nil {
		e.createFollowUpTask(ctx, contact.ID, session)
		return e.failCommit(session, "schedule meeting", err), nil
	}

	confirmation := ConfirmationNumber(appt.ID)
	date := humanDate(slot.Date, lang)

	sms := render("smsConfirmation", lang, date, slot.Time, confirmation)
	if err := e.crm.SendMessage(ctx, crm.SendMessageInput{ContactID: contact.ID, Message: sms}); err != nil {
		// the appointment exists; a lost SMS is not worth failing the booking
		e.logger.Warn("booking: confirmation sms failed", "session_id", session.ID, "appointment_id", appt.ID, "error", err)
	}

	e.createOpportunity(contact.ID, session)

	session.advanceTo(StepBooked)
	return &Result{
		Reply:              render("bookingConfirmed", lang, PracticeAreaName(session.PracticeArea, lang), date, slot.Time, confirmation),
		Booked:             true,
		AppointmentID:      appt.ID,
		ConfirmationNumber: confirmation,
		SelectedSlot:       slot,
	}, nil
}

func (e *Engine) failCommit(session *Session, step string, err error) *Result {
	e.logger.Error("booking: commit failed",
		"session_id", session.ID,
		"step", step,
		"error", err,
	)
	return &Result{Reply: render("bookingFailed", session.Language, e.cfg.FirmPhone)}
}

// createFollowUpTask asks staff to call the lead back when the calendar
// commit fails after the contact already exists. Best-effort.
func (e *Engine) createFollowUpTask(ctx context.Context, contactID string, session *Session) {
	title := fmt.Sprintf("Call back %s %s - booking did not complete", session.FirstName, session.LastName)
	err := e.crm.CreateTask(ctx, crm.CreateTaskInput{
		ContactID: contactID,
		Title:     title,
		Body:      fmt.Sprintf("Practice area: %s. Chat booking failed at scheduling; reach out to finish the appointment.", practiceAreaTitle(session.PracticeArea)),
		DueDate:   e.now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		e.logger.Warn("booking: follow-up task create failed", "session_id", session.ID, "error", err)
	}
}

// createOpportunity files a pipeline entry in the background. Failures are
// logged and never affect the booking result.
func (e *Engine) createOpportunity(contactID string, session *Session) {
	if e.cfg.PipelineID == "" {
		return
	}
	name := fmt.Sprintf("%s %s - %s", session.FirstName, session.LastName, practiceAreaTitle(session.PracticeArea))
	sessionID := session.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := e.crm.CreateOpportunity(ctx, crm.CreateOpportunityInput{
			ContactID:  contactID,
			Name:       name,
			PipelineID: e.cfg.PipelineID,
			StageID:    e.cfg.StageID,
			Value:      e.cfg.OpportunityValue,
		})
		if err != nil {
			e.logger.Warn("booking: opportunity create failed", "session_id", sessionID, "error", err)
		}
	}()
}

// ConfirmationNumber derives the user-facing confirmation code from an
// appointment id: the first 8 characters, uppercased.
func ConfirmationNumber(appointmentID string) string {
	id := appointmentID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
