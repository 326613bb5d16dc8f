package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name        string
		allowed     []string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantMethods bool
	}{
		{"allowed origin", []string{"http://localhost:3000/"}, "http://localhost:3000", false, http.StatusTeapot, "http://localhost:3000", "true", false},
		{"unknown origin", []string{"http://localhost:3000"}, "http://evil.test", false, http.StatusTeapot, "", "", false},
		{"preflight allowed", []string{"http://localhost:3000"}, "http://localhost:3000", true, http.StatusNoContent, "http://localhost:3000", "true", true},
		{"preflight unknown", []string{"http://localhost:3000"}, "http://evil.test", true, http.StatusNoContent, "", "", false},
		{"wildcard", []string{"*"}, "http://any.test", false, http.StatusTeapot, "http://any.test", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "http://test/fields", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantMethods, rr.Header().Get("Access-Control-Allow-Methods") != "")
		})
	}
}
