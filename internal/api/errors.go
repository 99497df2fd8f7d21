package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"roombooking/internal/messages"
	"roombooking/internal/service"
)

// ErrorRenderer maps engine errors to HTTP statuses and localized bodies.
// This is the only place transport statuses and human-readable text exist.
type ErrorRenderer struct {
	Messages *messages.Source
}

func NewErrorRenderer(source *messages.Source) *ErrorRenderer {
	return &ErrorRenderer{Messages: source}
}

// Write renders err for the request's language.
func (er *ErrorRenderer) Write(w http.ResponseWriter, r *http.Request, err error) {
	lang := requestLanguage(r)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		er.writeBody(w, http.StatusBadRequest, er.validationMessage(lang, validationErr))
		return
	}

	if errors.Is(err, service.ErrOverlapDetected) {
		er.writeBody(w, http.StatusConflict, er.Messages.Format(lang, messages.KeyDateConflict))
		return
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		key := messages.KeyBookingInvalidID
		if errors.Is(notFound.Err, service.ErrRoomUnavailable) {
			key = messages.KeyRoomInvalidID
		}
		er.writeBody(w, http.StatusNotFound, er.Messages.Format(lang, key, notFound.ID))
		return
	}

	if service.IsTransient(err) {
		logrus.WithError(err).Warn("request failed with transient error")
		er.writeBody(w, http.StatusServiceUnavailable, er.Messages.Format(lang, messages.KeyServiceUnavailable))
		return
	}

	logrus.WithError(err).Error("request failed with unexpected error")
	er.writeBody(w, http.StatusInternalServerError, er.Messages.Format(lang, messages.KeyUnexpected))
}

// WriteBadRequest renders malformed-request failures detected before the
// engine is reached.
func (er *ErrorRenderer) WriteBadRequest(w http.ResponseWriter, _ *http.Request, message string) {
	er.writeBody(w, http.StatusBadRequest, message)
}

func (er *ErrorRenderer) validationMessage(lang string, err *service.ValidationError) string {
	switch err.Kind {
	case service.InvalidRange:
		return er.Messages.Format(lang, messages.KeyStartAfterEnd)
	case service.StartTooSoon:
		return er.Messages.Format(lang, messages.KeyStartIsToday)
	case service.TooManyConsecutiveDays:
		return er.Messages.Format(lang, messages.KeyMaxDaysInRow, err.Limit)
	case service.TooFarInAdvance:
		return er.Messages.Format(lang, messages.KeyMaxDaysInAdvance, err.Limit)
	}
	return err.Error()
}

func (er *ErrorRenderer) writeBody(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Status: status, Message: message})
}

// requestLanguage picks the primary subtag of the first Accept-Language
// entry ("es-AR, en;q=0.8" -> "es").
func requestLanguage(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	lang := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	lang = strings.SplitN(lang, ";", 2)[0]
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
