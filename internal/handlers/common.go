package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// decodeAndValidate читает JSON-тело и прогоняет теги validate.
// При ошибке ответ уже записан.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		helpers.ErrorDetails(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		helpers.ErrorDetails(w, http.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	return true
}

// writeServiceError переводит категорию ошибки сервиса в HTTP-статус.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.ErrorDetails(w, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, services.ErrNotFound):
		helpers.ErrorDetails(w, http.StatusNotFound, "Not found", err.Error())
	default:
		helpers.ErrorDetails(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func clampAtoi(s string, def, min, max int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
