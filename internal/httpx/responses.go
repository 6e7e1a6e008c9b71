package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error body of the books API.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Text writes a plain-text body.
func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

// JSON writes v as the response body.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{
		Error:     message,
		RequestID: RequestIDFrom(r),
	})
}
