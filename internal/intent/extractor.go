// Package intent extracts booking intent and scheduling hints from chat
// messages using bilingual keyword matching. All functions are pure; the
// extractor never calls external services.
package intent

import (
	"regexp"
	"strings"
)

// Language selects the keyword set used for matching. Spanish keywords are
// always checked in addition to English because users mix languages mid-chat.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// Hints carries scheduling preferences extracted alongside the intent.
// Empty fields mean the message gave no signal for that category.
type Hints struct {
	PreferredDate string
	PreferredTime string
	PracticeArea  string
	Urgency       string
}

// Result is the outcome of analyzing a single message.
type Result struct {
	HasIntent bool
	Hints     Hints
}

var specificDateRE = regexp.MustCompile(`(?i)\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)

// bookingIntentPatterns mark a message as a scheduling request. Ordered by
// specificity; first match wins.
var bookingIntentPatterns = []string{
	"schedule a consultation",
	"book a consultation",
	"book an appointment",
	"schedule an appointment",
	"make an appointment",
	"set up a consultation",
	"talk to a lawyer",
	"talk to an attorney",
	"speak with a lawyer",
	"speak with an attorney",
	"speak to a lawyer",
	"speak to an attorney",
	"meet with a lawyer",
	"meet with an attorney",
	"free consultation",
	"consultation",
	"appointment",
	"schedule",
	"book",
	// Spanish
	"agendar una consulta",
	"hacer una cita",
	"programar una cita",
	"hablar con un abogado",
	"hablar con una abogada",
	"consulta gratis",
	"consulta gratuita",
	"necesito un abogado",
	"necesito una abogada",
	"una cita",
	"agendar",
	"cita",
	"consulta",
}

// practiceAreaPatterns maps user phrasing to canonical practice area codes.
// Ordered by specificity; first match wins.
var practiceAreaPatterns = []struct {
	pattern string
	name    string
}{
	// Immigration
	{"immigration", "immigration"},
	{"green card", "immigration"},
	{"visa", "immigration"},
	{"citizenship", "immigration"},
	{"naturalization", "immigration"},
	{"deportation", "immigration"},
	{"asylum", "immigration"},
	{"daca", "immigration"},
	{"inmigracion", "immigration"},
	{"inmigración", "immigration"},
	{"migratorio", "immigration"},
	{"residencia", "immigration"},
	{"ciudadania", "immigration"},
	{"ciudadanía", "immigration"},
	{"deportacion", "immigration"},
	{"deportación", "immigration"},
	{"asilo", "immigration"},
	// Personal injury
	{"personal injury", "personal_injury"},
	{"car accident", "personal_injury"},
	{"car crash", "personal_injury"},
	{"truck accident", "personal_injury"},
	{"motorcycle accident", "personal_injury"},
	{"slip and fall", "personal_injury"},
	{"injured", "personal_injury"},
	{"injury", "personal_injury"},
	{"accidente de auto", "personal_injury"},
	{"accidente de carro", "personal_injury"},
	{"accidente", "personal_injury"},
	{"lesion", "personal_injury"},
	{"lesión", "personal_injury"},
	{"lesionado", "personal_injury"},
	{"herido", "personal_injury"},
	// Workers compensation
	{"workers comp", "workers_compensation"},
	{"workers' comp", "workers_compensation"},
	{"workers compensation", "workers_compensation"},
	{"work injury", "workers_compensation"},
	{"injured at work", "workers_compensation"},
	{"hurt at work", "workers_compensation"},
	{"compensacion laboral", "workers_compensation"},
	{"compensación laboral", "workers_compensation"},
	{"accidente de trabajo", "workers_compensation"},
	{"lastimado en el trabajo", "workers_compensation"},
	{"herido en el trabajo", "workers_compensation"},
	// Criminal
	{"criminal", "criminal"},
	{"dui", "criminal"},
	{"dwi", "criminal"},
	{"arrested", "criminal"},
	{"arrest", "criminal"},
	{"charges", "criminal"},
	{"charged with", "criminal"},
	{"felony", "criminal"},
	{"misdemeanor", "criminal"},
	{"defensa criminal", "criminal"},
	{"arrestado", "criminal"},
	{"arrestaron", "criminal"},
	{"detenido", "criminal"},
	{"detuvieron", "criminal"},
	{"cargos", "criminal"},
	{"delito", "criminal"},
	// Family
	{"family law", "family"},
	{"divorce", "family"},
	{"custody", "family"},
	{"child support", "family"},
	{"alimony", "family"},
	{"separation", "family"},
	{"derecho familiar", "family"},
	{"divorcio", "family"},
	{"custodia", "family"},
	{"manutencion", "family"},
	{"manutención", "family"},
	{"pension alimenticia", "family"},
	{"pensión alimenticia", "family"},
}

// urgencyPatterns flag messages that need priority handling.
var urgencyPatterns = []string{
	"emergency",
	"urgent",
	"urgently",
	"asap",
	"as soon as possible",
	"right away",
	"immediately",
	"today if possible",
	"court date",
	"court tomorrow",
	"in jail",
	"in custody",
	"detained",
	"ice detained",
	// Spanish
	"emergencia",
	"urgente",
	"lo antes posible",
	"cuanto antes",
	"inmediatamente",
	"hoy mismo",
	"fecha de corte",
	"en la carcel",
	"en la cárcel",
	"detenido por ice",
}

// timeOfDayPatterns map phrasing to the three bookable windows. Spanish
// morning phrases are listed before the bare-date patterns below so that
// "por la mañana" reads as a time, not a date.
var timeOfDayPatterns = []struct {
	pattern string
	name    string
}{
	{"morning", "morning"},
	{"before noon", "morning"},
	{"afternoon", "afternoon"},
	{"after lunch", "afternoon"},
	{"evening", "evening"},
	{"after work", "evening"},
	{"por la manana", "morning"},
	{"por la mañana", "morning"},
	{"en la manana", "morning"},
	{"en la mañana", "morning"},
	{"por la tarde", "afternoon"},
	{"en la tarde", "afternoon"},
	{"por la noche", "evening"},
	{"en la noche", "evening"},
}

var datePatterns = []struct {
	pattern string
	name    string
}{
	{"day after tomorrow", "day_after_tomorrow"},
	{"pasado manana", "day_after_tomorrow"},
	{"pasado mañana", "day_after_tomorrow"},
	{"tomorrow", "tomorrow"},
	{"manana", "tomorrow"},
	{"mañana", "tomorrow"},
	{"today", "today"},
	{"hoy", "today"},
	{"monday", "monday"},
	{"lunes", "monday"},
	{"tuesday", "tuesday"},
	{"martes", "tuesday"},
	{"wednesday", "wednesday"},
	{"miercoles", "wednesday"},
	{"miércoles", "wednesday"},
	{"thursday", "thursday"},
	{"jueves", "thursday"},
	{"friday", "friday"},
	{"viernes", "friday"},
	{"next week", "next_week"},
	{"proxima semana", "next_week"},
	{"próxima semana", "next_week"},
	{"esta semana", "this_week"},
	{"this week", "this_week"},
}

// Detect analyzes a single inbound message for booking intent and
// scheduling hints. Matching is case-insensitive; within each category the
// first listed pattern that appears in the message wins.
func Detect(message string, lang Language) Result {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return Result{}
	}

	result := Result{Hints: extractHints(text)}
	for _, pattern := range bookingIntentPatterns {
		if strings.Contains(text, pattern) {
			result.HasIntent = true
			break
		}
	}
	return result
}

// MatchPracticeArea returns the canonical practice area code for the given
// text, or "" when nothing matches. Shared with the booking flow's
// practice-area question.
func MatchPracticeArea(text string) string {
	lower := strings.ToLower(text)
	for _, p := range practiceAreaPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.name
		}
	}
	return ""
}

func extractHints(text string) Hints {
	hints := Hints{
		PracticeArea: MatchPracticeArea(text),
	}

	for _, pattern := range urgencyPatterns {
		if strings.Contains(text, pattern) {
			hints.Urgency = "urgent"
			break
		}
	}

	for _, p := range timeOfDayPatterns {
		if strings.Contains(text, p.pattern) {
			hints.PreferredTime = p.name
			break
		}
	}

	// A Spanish morning phrase consumes "mañana" so it does not double as a
	// date hint.
	dateText := text
	if hints.PreferredTime == "morning" {
		for _, phrase := range []string{"por la manana", "por la mañana", "en la manana", "en la mañana"} {
			dateText = strings.ReplaceAll(dateText, phrase, "")
		}
	}
	for _, p := range datePatterns {
		if strings.Contains(dateText, p.pattern) {
			hints.PreferredDate = p.name
			break
		}
	}
	if hints.PreferredDate == "" {
		if m := specificDateRE.FindString(dateText); m != "" {
			hints.PreferredDate = m
		}
	}

	return hints
}
