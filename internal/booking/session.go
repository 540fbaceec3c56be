// Package booking implements the multi-turn slot-filling conversation that
// collects a prospect's contact details, offers consultation times, and
// commits the appointment to the CRM.
package booking

import "time"

// Step identifies the question most recently asked of the user. The value
// drives which field the next user message fills.
type Step string

const (
	StepNone         Step = ""
	StepFirstName    Step = "firstName"
	StepLastName     Step = "lastName"
	StepEmail        Step = "email"
	StepPhone        Step = "phone"
	StepPracticeArea Step = "practiceArea"
	StepSelectSlot   Step = "selectSlot"
	StepBooked       Step = "booked"
)

// stepOrder is the fixed fill order. A session's step only moves forward
// through this list.
var stepOrder = []Step{
	StepNone,
	StepFirstName,
	StepLastName,
	StepEmail,
	StepPhone,
	StepPracticeArea,
	StepSelectSlot,
	StepBooked,
}

// StepIndex returns the position of s in the fill order, or -1.
func StepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// AvailableSlot is a bookable consultation time presented to the user.
// It is a read-only projection of the calendar; the engine never mutates one.
type AvailableSlot struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // e.g. "9:00 AM"
	CalendarID   string `json:"calendar_id"`
	AttorneyName string `json:"attorney_name,omitempty"`
}

// Session is the per-conversation booking state. One session is driven by
// one user at a time; fields fill progressively, one per turn.
type Session struct {
	ID             string          `json:"id"`
	LastStep       Step            `json:"last_step"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	PracticeArea   string          `json:"practice_area,omitempty"`
	Urgency        string          `json:"urgency,omitempty"` // urgent|normal
	Notes          string          `json:"notes,omitempty"`
	Language       string          `json:"language"` // en|es
	PreferredTime  string          `json:"preferred_time,omitempty"`
	AvailableSlots []AvailableSlot `json:"available_slots,omitempty"`
	SelectedSlot   *AvailableSlot  `json:"selected_slot,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewSession creates a session in the initial state.
func NewSession(id, language string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		LastStep:  StepNone,
		Language:  language,
		Urgency:   "normal",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete reports whether all four contact fields and the practice area
// are filled.
func (s *Session) Complete() bool {
	return s.FirstName != "" && s.LastName != "" && s.Email != "" && s.Phone != "" && s.PracticeArea != ""
}

// advanceTo moves the step pointer forward. Backward moves are ignored so
// the step sequence stays monotonic.
func (s *Session) advanceTo(step Step) {
	if StepIndex(step) <= StepIndex(s.LastStep) {
		return
	}
	s.LastStep = step
	s.UpdatedAt = time.Now().UTC()
}
