package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Error("no request id in context")
		}
		if got := rec.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("response header = %q, context = %q", got, seen)
		}
	})

	t.Run("honors inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if seen != "upstream-id" {
			t.Errorf("context id = %q, want the inbound header", seen)
		}
	})
}
