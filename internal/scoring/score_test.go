package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avila-law/intake-platform/internal/leads"
)

func baseLead(createdAt time.Time) *leads.Lead {
	return &leads.Lead{
		ID:           "lead-1",
		Name:         "Maria Lopez",
		Email:        "maria@example.com",
		Phone:        "9195551234",
		PracticeArea: "immigration",
		Source:       "website",
		Status:       leads.StatusNew,
		Urgency:      leads.UrgencyLow,
		CreatedAt:    createdAt,
	}
}

func TestScoreRecencyBuckets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"under an hour", 30 * time.Minute, 30},
		{"same day", 5 * time.Hour, 20},
		{"two days", 48 * time.Hour, 10},
		{"five days", 120 * time.Hour, 5},
		{"two weeks", 336 * time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := baseLead(now.Add(-tc.age))
			// website 15 + immigration 10 + phone 10 + email 5 + name 5 + low 5 = 50 base
			assert.Equal(t, 50+tc.want, Score(lead, lead.Contact(), now))
		})
	}
}

func TestScoreIsNonIncreasingWithAge(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	fresh := baseLead(now.Add(-30 * time.Minute))
	stale := baseLead(now.Add(-100 * time.Hour))

	assert.GreaterOrEqual(t, Score(fresh, fresh.Contact(), now), Score(stale, stale.Contact(), now))
}

func TestScorePracticeAreaWeights(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-336 * time.Hour)

	pi := baseLead(created)
	pi.PracticeArea = "personal_injury"
	wc := baseLead(created)
	wc.PracticeArea = "workers_compensation"
	fam := baseLead(created)
	fam.PracticeArea = "family"
	none := baseLead(created)
	none.PracticeArea = ""

	assert.Equal(t, Score(pi, pi.Contact(), now), Score(wc, wc.Contact(), now))
	assert.Equal(t, Score(pi, pi.Contact(), now)-10, Score(fam, fam.Contact(), now))
	assert.Equal(t, Score(fam, fam.Contact(), now)-10, Score(none, none.Contact(), now))
}

func TestScoreSourceWeights(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-336 * time.Hour)

	want := map[string]int{
		"website":      15,
		"referral":     25,
		"advertising":  20,
		"social_media": 10,
		"phone":        15,
		"walk_in":      20,
		"billboard":    5,
		"":             5,
	}
	for source, weight := range want {
		lead := baseLead(created)
		lead.Source = source
		// immigration 10 + phone 10 + email 5 + name 5 + low 5 = 35 base
		assert.Equal(t, 35+weight, Score(lead, lead.Contact(), now), "source %q", source)
	}
}

func TestScoreContactCompleteness(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	lead := baseLead(now.Add(-336 * time.Hour))

	full := Score(lead, leads.Contact{Name: "Maria Lopez", Email: "maria@example.com", Phone: "9195551234"}, now)
	assert.Equal(t, full-10, Score(lead, leads.Contact{Name: "Maria Lopez", Email: "maria@example.com"}, now))
	assert.Equal(t, full-5, Score(lead, leads.Contact{Name: "Maria Lopez", Phone: "9195551234"}, now))
	assert.Equal(t, full-5, Score(lead, leads.Contact{Email: "maria@example.com", Phone: "9195551234"}, now))
	assert.Equal(t, full-20, Score(lead, leads.Contact{}, now))
}

func TestScoreUsesStoredUrgency(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-336 * time.Hour)

	want := map[string]int{
		leads.UrgencyCritical: 20,
		leads.UrgencyHigh:     15,
		leads.UrgencyMedium:   10,
		leads.UrgencyLow:      5,
	}
	for urgency, weight := range want {
		lead := baseLead(created)
		lead.Urgency = urgency
		// website 15 + immigration 10 + contact 20 = 45 base
		assert.Equal(t, 45+weight, Score(lead, lead.Contact(), now), "urgency %q", urgency)
	}
}

func TestScoreEngagement(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-336 * time.Hour)

	fresh := baseLead(created)
	fresh.Status = leads.StatusContacted
	recent := now.Add(-2 * time.Hour)
	fresh.LastContactAt = &recent

	stale := baseLead(created)
	stale.Status = leads.StatusContacted
	old := now.Add(-48 * time.Hour)
	stale.LastContactAt = &old

	never := baseLead(created)
	never.Status = leads.StatusContacted

	uncontacted := baseLead(created)

	base := Score(uncontacted, uncontacted.Contact(), now)
	assert.Equal(t, base+10, Score(never, never.Contact(), now))
	assert.Equal(t, base+10, Score(stale, stale.Contact(), now))
	assert.Equal(t, base+15, Score(fresh, fresh.Contact(), now))
}

func TestScoreClampedToUpperBound(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	lead := baseLead(now.Add(-30 * time.Minute))
	lead.PracticeArea = "personal_injury"
	lead.Source = "referral"
	lead.Urgency = leads.UrgencyCritical
	lead.Status = leads.StatusContacted
	recent := now.Add(-time.Hour)
	lead.LastContactAt = &recent

	// 30 + 20 + 25 + 20 + 20 + 15 sums well past the ceiling.
	assert.Equal(t, 100, Score(lead, lead.Contact(), now))
}

func TestScoreStaysInBounds(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	ages := []time.Duration{0, time.Hour, 25 * time.Hour, 80 * time.Hour, 400 * time.Hour}
	sources := []string{"website", "referral", "fax", ""}
	urgencies := []string{leads.UrgencyCritical, leads.UrgencyLow, ""}
	statuses := []string{leads.StatusNew, leads.StatusContacted}

	for _, age := range ages {
		for _, source := range sources {
			for _, urgency := range urgencies {
				for _, status := range statuses {
					lead := baseLead(now.Add(-age))
					lead.Source = source
					lead.Urgency = urgency
					lead.Status = status
					got := Score(lead, lead.Contact(), now)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
				}
			}
		}
	}
}

func TestDeriveUrgency(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, leads.UrgencyCritical},
		{85, leads.UrgencyCritical},
		{80, leads.UrgencyCritical},
		{79, leads.UrgencyHigh},
		{65, leads.UrgencyHigh},
		{60, leads.UrgencyHigh},
		{59, leads.UrgencyMedium},
		{45, leads.UrgencyMedium},
		{40, leads.UrgencyMedium},
		{39, leads.UrgencyLow},
		{10, leads.UrgencyLow},
		{0, leads.UrgencyLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveUrgency(tc.score), "score %d", tc.score)
	}
}
