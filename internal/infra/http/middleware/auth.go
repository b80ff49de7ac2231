package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// PasscodeGuard protects the admin routes with the process-wide passcode.
// Both "Authorization: Bearer <passcode>" and a bare "<passcode>" header are
// accepted, for compatibility with older console builds. The comparison is
// constant-time; a mismatch is a normal outcome, not a server error.
func PasscodeGuard(passcode string) func(http.Handler) http.Handler {
	secret := []byte(passcode)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("Authorization")
			if v, ok := strings.CutPrefix(presented, "Bearer "); ok {
				presented = v
			}

			if presented == "" || subtle.ConstantTimeCompare([]byte(presented), secret) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
