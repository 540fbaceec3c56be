// Package crm is a REST client for the firm's GoHighLevel account. It covers
// the handful of endpoints the intake flow needs: contact upsert, calendar
// scheduling and availability, outbound messages, tasks, and opportunities.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avila-law/intake-platform/pkg/logging"
)

const (
	defaultTimeout = 20 * time.Second
	apiVersion     = "2021-07-28"
)

// Client talks to the GoHighLevel REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	locationID string
	logger     *logging.Logger
}

// NewClient creates a CRM client. baseURL may be overridden for tests.
func NewClient(apiKey, locationID, baseURL string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		apiKey:     apiKey,
		locationID: locationID,
		logger:     logger,
	}
}

// GetOrCreateContact upserts a contact by email/phone and returns the record.
func (c *Client) GetOrCreateContact(ctx context.Context, in UpsertContactInput) (*Contact, error) {
	payload := struct {
		UpsertContactInput
		LocationID string `json:"locationId"`
	}{UpsertContactInput: in, LocationID: c.locationID}

	var out struct {
		Contact Contact `json:"contact"`
	}
	if err := c.do(ctx, http.MethodPost, "/contacts/upsert", payload, &out); err != nil {
		return nil, err
	}
	if out.Contact.ID == "" {
		return nil, fmt.Errorf("crm: contact upsert returned empty contact id")
	}
	return &out.Contact, nil
}

// ScheduleMeeting creates a calendar event and returns the appointment.
func (c *Client) ScheduleMeeting(ctx context.Context, in ScheduleMeetingInput) (*Appointment, error) {
	payload := struct {
		ScheduleMeetingInput
		LocationID string `json:"locationId"`
	}{ScheduleMeetingInput: in, LocationID: c.locationID}

	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/calendars/events/appointments", payload, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("crm: schedule meeting returned empty appointment id")
	}
	return &out, nil
}

// SendMessage sends an SMS to the contact through the CRM's messaging channel.
func (c *Client) SendMessage(ctx context.Context, in SendMessageInput) error {
	payload := struct {
		Type      string `json:"type"`
		ContactID string `json:"contactId"`
		Message   string `json:"message"`
	}{Type: "SMS", ContactID: in.ContactID, Message: in.Message}

	var out struct {
		MessageID string `json:"messageId"`
	}
	return c.do(ctx, http.MethodPost, "/conversations/messages", payload, &out)
}

// CreateTask creates a follow-up task on the contact.
func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) error {
	payload := struct {
		Title     string `json:"title"`
		Body      string `json:"body,omitempty"`
		DueDate   string `json:"dueDate"`
		Completed bool   `json:"completed"`
	}{Title: in.Title, Body: in.Body, DueDate: in.DueDate.UTC().Format(time.RFC3339), Completed: false}

	var out struct {
		ID string `json:"id"`
	}
	path := "/contacts/" + url.PathEscape(in.ContactID) + "/tasks"
	return c.do(ctx, http.MethodPost, path, payload, &out)
}

// CreateOpportunity creates a sales-pipeline entry linked to the contact.
func (c *Client) CreateOpportunity(ctx context.Context, in CreateOpportunityInput) error {
	payload := struct {
		CreateOpportunityInput
		LocationID string `json:"locationId"`
		Status     string `json:"status"`
	}{CreateOpportunityInput: in, LocationID: c.locationID, Status: "open"}

	var out struct {
		Opportunity struct {
			ID string `json:"id"`
		} `json:"opportunity"`
	}
	return c.do(ctx, http.MethodPost, "/opportunities/", payload, &out)
}

// GetAvailableSlots returns free slots for the calendar between start and end.
func (c *Client) GetAvailableSlots(ctx context.Context, calendarID string, start, end time.Time, timezone string) ([]Slot, error) {
	query := url.Values{}
	query.Set("startDate", strconv.FormatInt(start.UnixMilli(), 10))
	query.Set("endDate", strconv.FormatInt(end.UnixMilli(), 10))
	if timezone != "" {
		query.Set("timezone", timezone)
	}
	path := "/calendars/" + url.PathEscape(calendarID) + "/free-slots?" + query.Encode()

	// Response shape: {"2025-01-06": {"slots": ["2025-01-06T09:00:00-05:00", ...]}, ...}
	var out map[string]struct {
		Slots []string `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	var slots []Slot
	for _, day := range out {
		for _, raw := range day.Slots {
			start, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.logger.Warn("crm: skipping unparseable slot", "value", raw)
				continue
			}
			slots = append(slots, Slot{StartAt: start, EndAt: start.Add(time.Hour)})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartAt.Before(slots[j].StartAt) })
	return slots, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("crm: missing api key")
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("crm: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("crm: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Version", apiVersion)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("crm: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return fmt.Errorf("crm: status %d: %s", resp.StatusCode, msg)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("crm: unmarshal response: %w", err)
		}
	}
	return nil
}
