package transport

import (
	"encoding/json"
	"net/http"

	"github.com/ganot/issue-tracker/internal/resource"
)

// statusFor maps an outcome to its HTTP status. Client errors stay 200
// unless strict is set.
func statusFor(kind resource.Kind, strict bool) int {
	if !strict {
		return http.StatusOK
	}
	switch kind {
	case resource.KindInvalid:
		return http.StatusBadRequest
	case resource.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
