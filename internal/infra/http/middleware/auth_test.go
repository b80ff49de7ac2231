package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func guarded(passcode string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return PasscodeGuard(passcode)(next)
}

func TestPasscodeGuard(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"bearer form", "Bearer s3cret", http.StatusOK},
		{"bare form", "s3cret", http.StatusOK},
		{"wrong passcode", "Bearer nope", http.StatusUnauthorized},
		{"wrong bare passcode", "nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"passcode prefix", "Bearer s3c", http.StatusUnauthorized},
		{"passcode with suffix", "Bearer s3cretX", http.StatusUnauthorized},
		{"lowercase scheme", "bearer s3cret", http.StatusUnauthorized},
	}

	handler := guarded("s3cret")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/leads", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "Unauthorized")
				assert.NotContains(t, w.Body.String(), "ok")
			}
		})
	}
}
