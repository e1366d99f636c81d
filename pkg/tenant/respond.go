package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
)

// errorBody is the wire shape of middleware rejections. TenantStatus is
// set only for lifecycle rejections so clients can tell a suspended
// workspace apart from a plain permission error.
type errorBody struct {
	Error        string `json:"error"`
	TenantStatus string `json:"tenant_status,omitempty"`
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorHandler translates middleware rejections into HTTP responses.
// The error is always one of this package's sentinels, possibly joined
// with an underlying cause.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantContextMissing), errors.Is(err, ErrNoTenantInContext):
		writeError(w, http.StatusForbidden, errorBody{
			Error: "Tenant context not found. Please contact support.",
		})
	case errors.Is(err, ErrTenantNotFound):
		writeError(w, http.StatusNotFound, errorBody{
			Error: "Tenant not found. Please contact support.",
		})
	case errors.Is(err, ErrTenantSuspended):
		writeError(w, http.StatusForbidden, errorBody{
			Error:        "This account is suspended. Please contact support.",
			TenantStatus: string(StatusSuspended),
		})
	case errors.Is(err, ErrTenantPendingDeletion):
		writeError(w, http.StatusForbidden, errorBody{
			Error:        "This account is scheduled for deletion. Please contact support.",
			TenantStatus: string(StatusPendingDeletion),
		})
	default:
		writeError(w, http.StatusInternalServerError, errorBody{
			Error: "An error occurred. Please try again later.",
		})
	}
}
