package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", "loc-1", server.URL, nil)
}

func TestGetOrCreateContact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts/upsert", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Version"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Maria", payload["firstName"])
		assert.Equal(t, "loc-1", payload["locationId"])

		json.NewEncoder(w).Encode(map[string]any{
			"contact": map[string]any{"id": "contact-123", "firstName": "Maria"},
		})
	})

	contact, err := client.GetOrCreateContact(context.Background(), UpsertContactInput{
		FirstName: "Maria",
		LastName:  "Lopez",
		Email:     "maria@example.com",
		Tags:      []string{"chat-booking", "immigration"},
	})
	require.NoError(t, err)
	assert.Equal(t, "contact-123", contact.ID)
}

func TestGetOrCreateContactEmptyID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"contact": map[string]any{}})
	})

	_, err := client.GetOrCreateContact(context.Background(), UpsertContactInput{FirstName: "Maria"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty contact id")
}

func TestScheduleMeeting(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/events/appointments", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Immigration Consultation - Maria Lopez", payload["title"])
		assert.Equal(t, "confirmed", payload["appointmentStatus"])

		json.NewEncoder(w).Encode(map[string]any{"id": "appt-abc12345", "appointmentStatus": "confirmed"})
	})

	appt, err := client.ScheduleMeeting(context.Background(), ScheduleMeetingInput{
		CalendarID: "cal-1",
		ContactID:  "contact-123",
		Title:      "Immigration Consultation - Maria Lopez",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-abc12345", appt.ID)
}

func TestSendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/messages", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "SMS", payload["type"])
		assert.Equal(t, "contact-123", payload["contactId"])

		json.NewEncoder(w).Encode(map[string]any{"messageId": "msg-1"})
	})

	err := client.SendMessage(context.Background(), SendMessageInput{ContactID: "contact-123", Message: "hi"})
	assert.NoError(t, err)
}

func TestCreateOpportunity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opportunities/", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "open", payload["status"])
		assert.Equal(t, "pipe-1", payload["pipelineId"])

		json.NewEncoder(w).Encode(map[string]any{"opportunity": map[string]any{"id": "opp-1"}})
	})

	err := client.CreateOpportunity(context.Background(), CreateOpportunityInput{
		ContactID:  "contact-123",
		Name:       "Maria Lopez - Immigration",
		PipelineID: "pipe-1",
		StageID:    "stage-1",
		Value:      500,
	})
	assert.NoError(t, err)
}

func TestGetAvailableSlotsSortsAcrossDays(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/calendars/cal-1/free-slots")
		assert.NotEmpty(t, r.URL.Query().Get("startDate"))

		json.NewEncoder(w).Encode(map[string]any{
			"2026-09-08": map[string]any{"slots": []string{"2026-09-08T10:00:00Z"}},
			"2026-09-07": map[string]any{"slots": []string{"2026-09-07T14:00:00Z", "2026-09-07T09:00:00Z"}},
		})
	})

	slots, err := client.GetAvailableSlots(context.Background(), "cal-1", time.Now(), time.Now().AddDate(0, 0, 14), "America/New_York")
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].StartAt.Before(slots[1].StartAt))
	assert.True(t, slots[1].StartAt.Before(slots[2].StartAt))
	assert.Equal(t, slots[0].StartAt.Add(time.Hour), slots[0].EndAt)
}

func TestErrorStatusIncludesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid phone"}`))
	})

	err := client.SendMessage(context.Background(), SendMessageInput{ContactID: "c", Message: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "invalid phone")
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", "loc-1", "http://unused", nil)
	_, err := client.GetOrCreateContact(context.Background(), UpsertContactInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing api key")
}
