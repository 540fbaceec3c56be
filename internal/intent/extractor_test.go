package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBookingIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		lang    Language
		want    bool
	}{
		{"english schedule", "I want to schedule a consultation", LanguageEnglish, true},
		{"english book", "can I book an appointment?", LanguageEnglish, true},
		{"english speak", "I need to speak with a lawyer", LanguageEnglish, true},
		{"spanish cita", "quiero hacer una cita", LanguageSpanish, true},
		{"spanish abogado", "necesito hablar con un abogado", LanguageSpanish, true},
		{"spanish in english session", "quiero agendar una consulta", LanguageEnglish, true},
		{"no intent", "what are your office hours?", LanguageEnglish, false},
		{"empty", "", LanguageEnglish, false},
		{"whitespace", "   ", LanguageEnglish, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.message, tt.lang)
			assert.Equal(t, tt.want, got.HasIntent)
		})
	}
}

func TestDetectIsPure(t *testing.T) {
	msg := "I was arrested and need a lawyer ASAP"
	first := Detect(msg, LanguageEnglish)
	second := Detect(msg, LanguageEnglish)
	assert.Equal(t, first, second)
}

func TestMatchPracticeArea(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I need help with my green card", "immigration"},
		{"me van a deportar, deportacion", "immigration"},
		{"I was in a car accident", "personal_injury"},
		{"tuve un accidente de trabajo", "workers_compensation"},
		{"I got hurt at work last week", "workers_compensation"},
		{"charged with a DUI", "criminal"},
		{"me arrestaron anoche", "criminal"},
		{"filing for divorce", "family"},
		{"necesito ayuda con custodia", "family"},
		{"hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPracticeArea(tt.text))
		})
	}
}

func TestMatchPracticeAreaFirstMatchWins(t *testing.T) {
	// immigration patterns are declared before criminal, so a message with
	// both resolves to immigration
	got := MatchPracticeArea("I was arrested and now facing deportation")
	assert.Equal(t, "immigration", got)
}

func TestExtractHints(t *testing.T) {
	t.Run("urgency", func(t *testing.T) {
		r := Detect("I need an appointment ASAP, I have a court date", LanguageEnglish)
		assert.Equal(t, "urgent", r.Hints.Urgency)
	})

	t.Run("spanish urgency", func(t *testing.T) {
		r := Detect("es urgente, mi esposo esta detenido", LanguageSpanish)
		assert.Equal(t, "urgent", r.Hints.Urgency)
	})

	t.Run("time of day", func(t *testing.T) {
		r := Detect("can I come in tomorrow morning?", LanguageEnglish)
		assert.Equal(t, "morning", r.Hints.PreferredTime)
		assert.Equal(t, "tomorrow", r.Hints.PreferredDate)
	})

	t.Run("spanish morning is not tomorrow", func(t *testing.T) {
		r := Detect("prefiero una cita por la mañana", LanguageSpanish)
		assert.Equal(t, "morning", r.Hints.PreferredTime)
		assert.Empty(t, r.Hints.PreferredDate)
	})

	t.Run("spanish bare manana is tomorrow", func(t *testing.T) {
		r := Detect("puedo ir mañana", LanguageSpanish)
		assert.Equal(t, "tomorrow", r.Hints.PreferredDate)
	})

	t.Run("weekday", func(t *testing.T) {
		r := Detect("do you have anything on friday afternoon", LanguageEnglish)
		assert.Equal(t, "friday", r.Hints.PreferredDate)
		assert.Equal(t, "afternoon", r.Hints.PreferredTime)
	})

	t.Run("numeric date", func(t *testing.T) {
		r := Detect("how about 12/15?", LanguageEnglish)
		assert.Equal(t, "12/15", r.Hints.PreferredDate)
	})

	t.Run("practice area hint with intent", func(t *testing.T) {
		r := Detect("I want to schedule a consultation about immigration", LanguageEnglish)
		assert.True(t, r.HasIntent)
		assert.Equal(t, "immigration", r.Hints.PracticeArea)
	})

	t.Run("no hints", func(t *testing.T) {
		r := Detect("hello", LanguageEnglish)
		assert.Equal(t, Hints{}, r.Hints)
	})
}
