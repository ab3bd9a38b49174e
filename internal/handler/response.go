package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

// envelope is the body shape every platform endpoint answers with.
type envelope struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func respondWithData(w http.ResponseWriter, code int, data any) {
	respondWithJson(w, code, envelope{Status: "success", Data: data})
}

func respondWithPage(w http.ResponseWriter, data any, pagination map[string]any) {
	respondWithJson(w, http.StatusOK, envelope{
		Status: "success",
		Data:   data,
		Meta:   map[string]any{"pagination": pagination},
	})
}

func respondWithError(w http.ResponseWriter, code int, message string, errs ...string) {
	respondWithJson(w, code, envelope{Status: "error", Message: message, Errors: errs})
}

// respondWithValidation reports a rejected payload the way the platform does:
// 422 with one message per failed check.
func respondWithValidation(w http.ResponseWriter, err error) {
	var verr *sdkerr.ValidationError
	if errors.As(err, &verr) {
		respondWithError(w, http.StatusUnprocessableEntity, verr.Message, verr.Errors...)
		return
	}
	respondWithError(w, http.StatusUnprocessableEntity, err.Error())
}

func respondWithJson(w http.ResponseWriter, code int, payload any) {
	dat, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(dat)
}
