package crm

import "time"

// Contact is a CRM contact record.
type Contact struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Tags      []string `json:"tags"`
}

// UpsertContactInput carries the fields for contact create-or-update.
type UpsertContactInput struct {
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// Appointment is a scheduled calendar event.
type Appointment struct {
	ID        string    `json:"id"`
	Status    string    `json:"appointmentStatus"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ScheduleMeetingInput carries the fields for calendar event creation.
type ScheduleMeetingInput struct {
	CalendarID string    `json:"calendarId"`
	ContactID  string    `json:"contactId"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"appointmentStatus"`
	Notes      string    `json:"notes,omitempty"`
}

// SendMessageInput carries an outbound SMS-equivalent message.
type SendMessageInput struct {
	ContactID string `json:"contactId"`
	Message   string `json:"message"`
}

// CreateTaskInput carries a follow-up task for staff.
type CreateTaskInput struct {
	ContactID string    `json:"contactId"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	DueDate   time.Time `json:"dueDate"`
}

// CreateOpportunityInput carries a sales-pipeline entry.
type CreateOpportunityInput struct {
	ContactID    string            `json:"contactId"`
	Name         string            `json:"name"`
	PipelineID   string            `json:"pipelineId"`
	StageID      string            `json:"pipelineStageId"`
	Value        float64           `json:"monetaryValue"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// Slot is a free calendar slot returned by availability lookup.
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
}
