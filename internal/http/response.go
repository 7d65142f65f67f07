package http

import (
	"encoding/json"
	"net/http"

	"eduverse/backend/internal/dto"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK[T any](w http.ResponseWriter, msg string, data T) {
	WriteJSON(w, http.StatusOK, dto.Success(msg, data))
}

// Fail writes an error envelope with no payload.
func Fail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, dto.ErrorMessage(msg))
}
