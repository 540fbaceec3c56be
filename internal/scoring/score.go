package scoring

import (
	"time"

	"github.com/avila-law/intake-platform/internal/leads"
)

// Assignment thresholds used by the batch pass.
const (
	assignThreshold = 70
	agentCapacity   = 10
)

var sourceWeights = map[string]int{
	"website":      15,
	"referral":     25,
	"advertising":  20,
	"social_media": 10,
	"phone":        15,
	"walk_in":      20,
}

var urgencyWeights = map[string]int{
	leads.UrgencyCritical: 20,
	leads.UrgencyHigh:     15,
	leads.UrgencyMedium:   10,
	leads.UrgencyLow:      5,
}

// Score computes the lead's 0-100 priority score from the lead snapshot and
// its linked contact. It reads the lead's stored urgency, not the urgency the
// new score will derive. No side effects.
func Score(lead *leads.Lead, contact leads.Contact, now time.Time) int {
	score := 0

	age := now.Sub(lead.CreatedAt)
	switch {
	case age < time.Hour:
		score += 30
	case age < 24*time.Hour:
		score += 20
	case age < 72*time.Hour:
		score += 10
	case age < 168*time.Hour:
		score += 5
	}

	switch lead.PracticeArea {
	case "":
	case "personal_injury", "workers_compensation":
		score += 20
	default:
		score += 10
	}

	if w, ok := sourceWeights[lead.Source]; ok {
		score += w
	} else {
		score += 5
	}

	if contact.Phone != "" {
		score += 10
	}
	if contact.Email != "" {
		score += 5
	}
	if contact.Name != "" {
		score += 5
	}

	score += urgencyWeights[lead.Urgency]

	if lead.Status == leads.StatusContacted {
		score += 10
		if lead.LastContactAt != nil && now.Sub(*lead.LastContactAt) < 24*time.Hour {
			score += 5
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// DeriveUrgency maps a score onto an urgency tier. Boundaries are inclusive
// lower bounds.
func DeriveUrgency(score int) string {
	switch {
	case score >= 80:
		return leads.UrgencyCritical
	case score >= 60:
		return leads.UrgencyHigh
	case score >= 40:
		return leads.UrgencyMedium
	default:
		return leads.UrgencyLow
	}
}
