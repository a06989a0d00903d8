package handlers

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		storage[pl.Key] = pl.Payload
	}
	json.NewEncoder(w).Encode(storage)
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, toPayload("error", message))
}

// responseConfirmRequired - ответ на разрушительную операцию без
// подтверждения: состояние не тронуто, клиент должен переспросить.
func responseConfirmRequired(w http.ResponseWriter, message string) {
	responseWithJSON(w, http.StatusConflict,
		toPayload("confirm_required", true),
		toPayload("message", message),
	)
}
