package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request id header read from and echoed back to clients.
const Header = "X-Request-ID"

const maxIDLength = 128

// Client-supplied ids are accepted only when they look like ids; anything
// else is replaced so log injection via the header is not possible.
var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware ensures every request carries a request id: it keeps a valid
// client-supplied X-Request-ID, generates a UUID otherwise, echoes the id on
// the response, and stores it in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = uuid.New().String()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
