package booking

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/avila-law/intake-platform/internal/crm"
)

const (
	slotHorizonDays     = 14
	maxSlotsToPresent   = 3
	consultationMinutes = 60

	// mockAttorneyName marks slots produced by the mock generator so they
	// are never mistaken for live calendar data.
	mockAttorneyName = "Available Attorney"

	slotDateLayout = "2006-01-02"
	slotTimeLayout = "3:04 PM"
)

// dailySlotTimes are the candidate consultation times offered each weekday.
var dailySlotTimes = []string{"9:00 AM", "10:00 AM", "11:00 AM", "2:00 PM", "3:00 PM", "4:00 PM"}

// SlotSource supplies bookable consultation slots for a date range.
type SlotSource interface {
	AvailableSlots(ctx context.Context, start, end time.Time) ([]AvailableSlot, error)
}

// CalendarAPI is the slice of the CRM client the calendar source needs.
type CalendarAPI interface {
	GetAvailableSlots(ctx context.Context, calendarID string, start, end time.Time, timezone string) ([]crm.Slot, error)
}

// CalendarSlotSource reads availability from the firm's CRM calendar.
type CalendarSlotSource struct {
	api        CalendarAPI
	calendarID string
	timezone   string
	location   *time.Location
}

// NewCalendarSlotSource creates a calendar-backed slot source. The timezone
// must be a valid IANA name; invalid names fall back to UTC.
func NewCalendarSlotSource(api CalendarAPI, calendarID, timezone string) *CalendarSlotSource {
	if api == nil {
		panic("booking: calendar api is required")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &CalendarSlotSource{api: api, calendarID: calendarID, timezone: timezone, location: loc}
}

func (s *CalendarSlotSource) AvailableSlots(ctx context.Context, start, end time.Time) ([]AvailableSlot, error) {
	raw, err := s.api.GetAvailableSlots(ctx, s.calendarID, start, end, s.timezone)
	if err != nil {
		return nil, fmt.Errorf("booking: fetch slots: %w", err)
	}
	slots := make([]AvailableSlot, 0, len(raw))
	for _, r := range raw {
		local := r.StartAt.In(s.location)
		if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
			continue
		}
		slots = append(slots, AvailableSlot{
			Date:       local.Format(slotDateLayout),
			Time:       local.Format(slotTimeLayout),
			CalendarID: s.calendarID,
		})
	}
	return slots, nil
}

// MockSlotSource generates plausible availability for environments without
// a calendar integration. Each weekday time is offered with 70% probability.
type MockSlotSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockSlotSource creates a mock source. Pass a seeded *rand.Rand for
// deterministic output in tests; nil seeds from the clock.
func NewMockSlotSource(rng *rand.Rand) *MockSlotSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockSlotSource{rng: rng}
}

func (s *MockSlotSource) AvailableSlots(ctx context.Context, start, end time.Time) ([]AvailableSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slots []AvailableSlot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, t := range dailySlotTimes {
			if s.rng.Float64() >= 0.7 {
				continue
			}
			slots = append(slots, AvailableSlot{
				Date:         day.Format(slotDateLayout),
				Time:         t,
				CalendarID:   "mock",
				AttorneyName: mockAttorneyName,
			})
		}
	}
	return slots, nil
}

// presentable narrows fetched slots to the few offered to the user,
// honoring a time-of-day preference when it leaves anything to offer.
func presentable(slots []AvailableSlot, preferredTime string) []AvailableSlot {
	filtered := filterByTimeOfDay(slots, preferredTime)
	if len(filtered) == 0 {
		filtered = slots
	}
	if len(filtered) > maxSlotsToPresent {
		filtered = filtered[:maxSlotsToPresent]
	}
	return filtered
}

// filterByTimeOfDay keeps slots in the named window: morning [9,12),
// afternoon [12,17), evening [17,20). Unknown names keep everything.
func filterByTimeOfDay(slots []AvailableSlot, preference string) []AvailableSlot {
	var lo, hi int
	switch preference {
	case "morning":
		lo, hi = 9, 12
	case "afternoon":
		lo, hi = 12, 17
	case "evening":
		lo, hi = 17, 20
	default:
		return slots
	}
	var out []AvailableSlot
	for _, slot := range slots {
		h, ok := slotHour(slot.Time)
		if !ok {
			continue
		}
		if h >= lo && h < hi {
			out = append(out, slot)
		}
	}
	return out
}

func slotHour(timeStr string) (int, bool) {
	t, err := time.Parse(slotTimeLayout, timeStr)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

// slotStart resolves a slot to its wall-clock start in the given location.
func slotStart(slot AvailableSlot, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(slotDateLayout+" "+slotTimeLayout, slot.Date+" "+slot.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking: parse slot time: %w", err)
	}
	return t, nil
}

var weekdayNamesES = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var monthNamesES = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// humanDate renders a slot date like "Monday, September 7" or
// "lunes 7 de septiembre".
func humanDate(dateStr, lang string) string {
	t, err := time.Parse(slotDateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	if lang == "es" {
		return fmt.Sprintf("%s %d de %s", weekdayNamesES[t.Weekday()], t.Day(), monthNamesES[t.Month()])
	}
	return t.Format("Monday, January 2")
}

// formatSlotList renders the numbered slot menu shown to the user.
func formatSlotList(slots []AvailableSlot, lang string) string {
	var b strings.Builder
	for i, slot := range slots {
		fmt.Fprintf(&b, "%d. %s", i+1, humanDate(slot.Date, lang))
		if lang == "es" {
			fmt.Fprintf(&b, " a las %s", slot.Time)
		} else {
			fmt.Fprintf(&b, " at %s", slot.Time)
		}
		if slot.AttorneyName != "" {
			fmt.Fprintf(&b, " (%s)", slot.AttorneyName)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
