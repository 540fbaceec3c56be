package booking

import "fmt"

// Template is a user-facing message in both supported languages. Responses
// in this package are strictly template-driven; nothing here is generated.
type Template struct {
	EN string
	ES string
}

// Render returns the template text for the given language, defaulting to
// English for anything other than "es".
func (t Template) Render(lang string, args ...interface{}) string {
	text := t.EN
	if lang == "es" {
		text = t.ES
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

var templates = map[string]Template{
	"askFirstName": {
		EN: "I'd be happy to help you schedule a free consultation. What is your first name?",
		ES: "Con gusto le ayudo a agendar una consulta gratuita. ¿Cuál es su nombre?",
	},
	"askLastName": {
		EN: "Thanks, %s! What is your last name?",
		ES: "¡Gracias, %s! ¿Cuál es su apellido?",
	},
	"askEmail": {
		EN: "What is the best email address to reach you?",
		ES: "¿Cuál es el mejor correo electrónico para contactarle?",
	},
	"askPhone": {
		EN: "What is the best phone number to reach you?",
		ES: "¿Cuál es el mejor número de teléfono para contactarle?",
	},
	"askPracticeArea": {
		EN: "What type of legal matter do you need help with? We handle: immigration, personal injury, criminal defense, family law, and workers' compensation.",
		ES: "¿Con qué tipo de asunto legal necesita ayuda? Manejamos: inmigración, lesiones personales, defensa criminal, derecho familiar y compensación laboral.",
	},
	"invalidEmail": {
		EN: "That doesn't look like a valid email address. Could you re-enter it? (for example: name@example.com)",
		ES: "Ese correo electrónico no parece válido. ¿Podría escribirlo de nuevo? (por ejemplo: nombre@ejemplo.com)",
	},
	"invalidPhone": {
		EN: "That phone number looks too short. Please enter a phone number with at least 10 digits.",
		ES: "Ese número de teléfono parece muy corto. Por favor escriba un número con al menos 10 dígitos.",
	},
	"invalidPracticeArea": {
		EN: "I didn't catch that. Please tell me which of these applies: immigration, personal injury, criminal defense, family law, or workers' compensation.",
		ES: "No le entendí. Por favor indíqueme cuál de estas opciones aplica: inmigración, lesiones personales, defensa criminal, derecho familiar o compensación laboral.",
	},
	"slotsHeader": {
		EN: "Here are our next available consultation times:\n%s\nPlease reply with the number of the time that works best for you.",
		ES: "Estos son nuestros próximos horarios disponibles para consulta:\n%s\nPor favor responda con el número del horario que mejor le convenga.",
	},
	"noSlots": {
		EN: "I'm sorry, I couldn't find any open consultation times right now. Please call us at %s and we'll find a time for you.",
		ES: "Lo siento, no encontré horarios de consulta disponibles en este momento. Por favor llámenos al %s y le buscaremos un horario.",
	},
	"invalidSlotSelection": {
		EN: "Please reply with a number between 1 and %d to choose one of the listed times.",
		ES: "Por favor responda con un número entre 1 y %d para elegir uno de los horarios.",
	},
	"bookingConfirmed": {
		EN: "You're all set! Your %s consultation is booked for %s at %s. Your confirmation number is %s. We've also sent the details to your phone.",
		ES: "¡Listo! Su consulta de %s está agendada para el %s a las %s. Su número de confirmación es %s. También enviamos los detalles a su teléfono.",
	},
	"bookingFailed": {
		EN: "I'm sorry, something went wrong while booking your appointment. Your information is saved. Please try again in a moment, or call us at %s and we'll get you scheduled.",
		ES: "Lo siento, algo salió mal al agendar su cita. Su información está guardada. Por favor intente de nuevo en un momento, o llámenos al %s y le agendaremos.",
	},
	"alreadyBooked": {
		EN: "Your consultation is already booked. If you need to make any changes, call us at %s.",
		ES: "Su consulta ya está agendada. Si necesita hacer algún cambio, llámenos al %s.",
	},
	"smsConfirmation": {
		EN: "Your consultation with Avila Law is confirmed for %s at %s. Confirmation number: %s. Reply to this message or call us if you need to reschedule.",
		ES: "Su consulta con Avila Law está confirmada para el %s a las %s. Número de confirmación: %s. Responda a este mensaje o llámenos si necesita cambiar la fecha.",
	},
}

// practiceAreaNames maps the canonical practice area codes to display names.
var practiceAreaNames = map[string]Template{
	"immigration":          {EN: "Immigration", ES: "Inmigración"},
	"personal_injury":      {EN: "Personal Injury", ES: "Lesiones Personales"},
	"criminal":             {EN: "Criminal Defense", ES: "Defensa Criminal"},
	"family":               {EN: "Family Law", ES: "Derecho Familiar"},
	"workers_compensation": {EN: "Workers' Compensation", ES: "Compensación Laboral"},
}

func render(name, lang string, args ...interface{}) string {
	t, ok := templates[name]
	if !ok {
		return ""
	}
	return t.Render(lang, args...)
}

// PracticeAreaName returns the localized display name for a practice area
// code, falling back to the code itself.
func PracticeAreaName(code, lang string) string {
	t, ok := practiceAreaNames[code]
	if !ok {
		return code
	}
	return t.Render(lang)
}

// practiceAreaTitle is the English display name used in calendar event
// titles regardless of chat language.
func practiceAreaTitle(code string) string {
	t, ok := practiceAreaNames[code]
	if !ok {
		return code
	}
	return t.EN
}
