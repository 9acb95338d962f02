package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape for every operation.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK renders a 200 envelope with data and an optional row count.
func OK(w http.ResponseWriter, data interface{}, count *int) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: count})
}

// OKMessage renders a 200 envelope carrying only a confirmation message.
func OKMessage(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

// Fail renders a failure envelope with the given status and client-facing
// error text.
func Fail(w http.ResponseWriter, status int, errMsg string) {
	JSON(w, status, Envelope{Success: false, Error: errMsg})
}

// Count adapts a length for the envelope's optional count field.
func Count(n int) *int { return &n }
