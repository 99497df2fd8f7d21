package messages

import "fmt"

// Message keys shared between the service errors and their rendered text.
const (
	KeyBookingInvalidID   = "booking.invalid.id"
	KeyRoomInvalidID      = "booking.room.invalid.id"
	KeyStartAfterEnd      = "booking.startDate.is.after.endDate"
	KeyStartIsToday       = "booking.startDate.is.today"
	KeyMaxDaysInRow       = "booking.max.days.in.rows"
	KeyMaxDaysInAdvance   = "booking.max.days.in.advance"
	KeyDateConflict       = "booking.date.conflict"
	KeyServiceUnavailable = "booking.service.unavailable"
	KeyUnexpected         = "booking.unexpected.error"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyBookingInvalidID:   "Booking %s does not exist",
		KeyRoomInvalidID:      "Room %s does not exist or is not available",
		KeyStartAfterEnd:      "The start date must be before the end date",
		KeyStartIsToday:       "Bookings must start at least one day in the future",
		KeyMaxDaysInRow:       "A booking may span at most %d consecutive days",
		KeyMaxDaysInAdvance:   "Bookings may be made at most %d days in advance",
		KeyDateConflict:       "The requested dates conflict with an existing booking",
		KeyServiceUnavailable: "The booking service is temporarily unavailable, please retry",
		KeyUnexpected:         "An unexpected error occurred",
	},
	"es": {
		KeyBookingInvalidID:   "La reserva %s no existe",
		KeyRoomInvalidID:      "La sala %s no existe o no está disponible",
		KeyStartAfterEnd:      "La fecha de inicio debe ser anterior a la fecha de fin",
		KeyStartIsToday:       "Las reservas deben comenzar al menos un día en el futuro",
		KeyMaxDaysInRow:       "Una reserva puede abarcar como máximo %d días consecutivos",
		KeyMaxDaysInAdvance:   "Las reservas pueden hacerse con un máximo de %d días de antelación",
		KeyDateConflict:       "Las fechas solicitadas entran en conflicto con una reserva existente",
		KeyServiceUnavailable: "El servicio de reservas no está disponible temporalmente, reintente",
		KeyUnexpected:         "Ocurrió un error inesperado",
	},
	"it": {
		KeyBookingInvalidID:   "La prenotazione %s non esiste",
		KeyRoomInvalidID:      "La sala %s non esiste o non è disponibile",
		KeyStartAfterEnd:      "La data di inizio deve precedere la data di fine",
		KeyStartIsToday:       "Le prenotazioni devono iniziare almeno un giorno nel futuro",
		KeyMaxDaysInRow:       "Una prenotazione può coprire al massimo %d giorni consecutivi",
		KeyMaxDaysInAdvance:   "Le prenotazioni possono essere fatte con al massimo %d giorni di anticipo",
		KeyDateConflict:       "Le date richieste sono in conflitto con una prenotazione esistente",
		KeyServiceUnavailable: "Il servizio di prenotazione è temporaneamente non disponibile, riprovare",
		KeyUnexpected:         "Si è verificato un errore imprevisto",
	},
}

// Source renders localized error text. It never affects control flow:
// unknown languages fall back to the default, unknown keys to the key
// itself.
type Source struct {
	defaultLang string
}

func NewSource(defaultLang string) *Source {
	if _, ok := catalog[defaultLang]; !ok {
		defaultLang = "en"
	}
	return &Source{defaultLang: defaultLang}
}

// Format renders key in lang, applying args to the message template.
func (s *Source) Format(lang, key string, args ...interface{}) string {
	table, ok := catalog[lang]
	if !ok {
		table = catalog[s.defaultLang]
	}
	tmpl, ok := table[key]
	if !ok {
		tmpl, ok = catalog["en"][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
