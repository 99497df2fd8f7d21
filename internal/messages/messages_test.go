package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Localizes(t *testing.T) {
	source := NewSource("en")

	assert.Equal(t,
		"A booking may span at most 3 consecutive days",
		source.Format("en", KeyMaxDaysInRow, 3))
	assert.Equal(t,
		"Una reserva puede abarcar como máximo 3 días consecutivos",
		source.Format("es", KeyMaxDaysInRow, 3))
	assert.Equal(t,
		"Una prenotazione può coprire al massimo 3 giorni consecutivi",
		source.Format("it", KeyMaxDaysInRow, 3))
}

func TestFormat_UnknownLanguageFallsBack(t *testing.T) {
	source := NewSource("es")

	assert.Equal(t,
		"Las fechas solicitadas entran en conflicto con una reserva existente",
		source.Format("de", KeyDateConflict))
}

func TestFormat_UnknownKeyReturnsKey(t *testing.T) {
	source := NewSource("en")

	assert.Equal(t, "booking.no.such.key", source.Format("en", "booking.no.such.key"))
}

func TestNewSource_UnknownDefaultBecomesEnglish(t *testing.T) {
	source := NewSource("xx")

	assert.Equal(t,
		"The requested dates conflict with an existing booking",
		source.Format("zz", KeyDateConflict))
}

func TestFormat_NoArgsLeavesTemplateAlone(t *testing.T) {
	source := NewSource("en")

	// Templates without verbs must not be run through Sprintf.
	assert.Equal(t,
		"The start date must be before the end date",
		source.Format("en", KeyStartAfterEnd))
}
