package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the correlation-id header used when the caller
// configures none.
const DefaultRequestIDHeader = "X-Request-ID"

// ErrorEnvelope is the wire shape of every JSON API error. Meta carries
// per-response correlation data such as the request id.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// WriteJSON writes payload with the given status. A nil payload writes the
// status line and headers only.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// EnsureRequestID returns the request's correlation id under the given
// header name, minting one and echoing it on the response when the caller
// sent none.
func EnsureRequestID(w http.ResponseWriter, r *http.Request, header string) string {
	if r == nil {
		return ""
	}
	header = strings.TrimSpace(header)
	if header == "" {
		header = DefaultRequestIDHeader
	}

	requestID := strings.TrimSpace(r.Header.Get(header))
	if requestID == "" {
		requestID = uuid.NewString()
		if w != nil {
			w.Header().Set(header, requestID)
		}
	}
	return requestID
}

// WriteError writes an ErrorEnvelope with the given status and code.
func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
