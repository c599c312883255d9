package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"trustaes/internal/aes"
	"trustaes/internal/modes"
	"trustaes/internal/padding"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// errBadRequest marks request validation failures raised inside handlers.
type errBadRequest struct{ msg string }

func (e errBadRequest) Error() string { return e.msg }

func badRequest(msg string) error { return errBadRequest{msg} }

func statusFor(err error) int {
	var br errBadRequest
	switch {
	case errors.As(err, &br),
		errors.Is(err, aes.ErrInvalidKeySize),
		errors.Is(err, aes.ErrInvalidBlockSize),
		errors.Is(err, modes.ErrInvalidIVSize),
		errors.Is(err, modes.ErrUnknownMode),
		errors.Is(err, modes.ErrCounterOverflow),
		errors.Is(err, padding.ErrInvalidPadding):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondErr writes err with the status statusFor picks. Server errors are
// logged and their text is not sent to the client.
func respondErr(w http.ResponseWriter, lg *zap.SugaredLogger, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		lg.Errorw("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, err.Error(), code)
}
