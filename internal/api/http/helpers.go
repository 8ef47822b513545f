package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeValid decodes the body into dst and runs its validate tags.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("bad json")
	}
	return validate.Struct(dst)
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrNotFound), errors.Is(err, scholarship.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrNotEditable), errors.Is(err, application.ErrBadTransition):
		return http.StatusConflict
	case errors.Is(err, application.ErrNotComplete):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func httpError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errStatus(err))
}
