package leads

import (
	"strings"
	"time"
)

// Lead statuses. A lead is "open" while its status is neither won nor lost.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// Urgency tiers derived from the lead score.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// Lead represents a prospective client in the intake pipeline.
type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Message       string     `json:"message"`
	PracticeArea  string     `json:"practice_area"`
	Source        string     `json:"source"`
	Status        string     `json:"status"`
	Urgency       string     `json:"urgency"`
	Score         int        `json:"score"`
	AssignedToID  *string    `json:"assigned_to_id,omitempty"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Open reports whether the lead still counts toward an agent's workload.
func (l *Lead) Open() bool {
	return l.Status != StatusWon && l.Status != StatusLost
}

// Contact is the reachability snapshot used by the scoring function.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Contact returns the lead's linked contact snapshot.
func (l *Lead) Contact() Contact {
	return Contact{Name: l.Name, Email: l.Email, Phone: l.Phone}
}

// Agent is a staff member leads can be assigned to. OpenLeads is the count
// of currently open leads assigned to the agent.
type Agent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	OpenLeads int    `json:"open_leads"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	PracticeArea string `json:"practice_area"`
	Source       string `json:"source"`
	Urgency      string `json:"urgency"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	return nil
}
