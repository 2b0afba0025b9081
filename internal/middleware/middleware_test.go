package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habits/internal/ctxkeys"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler, mark("first"), mark("second"), mark("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "first,second,third" {
		t.Errorf("order = %v", order)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.RequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("request id %q is not a UUID", seen)
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header = %q, want %q", rec.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		incoming := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/summary", nil)
		req.Header.Set(RequestIDHeader, incoming)

		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != incoming {
			t.Errorf("request id = %q, want %q", seen, incoming)
		}
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summary", nil)
		req.Header.Set(RequestIDHeader, "<script>")

		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen == "<script>" {
			t.Error("invalid incoming request id was kept")
		}
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "https://app.test", wantOrigin: "*", wantStatus: http.StatusOK},
		{name: "listed origin", allowed: []string{"https://app.test"}, method: http.MethodGet, origin: "https://app.test", wantOrigin: "https://app.test", wantStatus: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"https://app.test"}, method: http.MethodGet, origin: "https://evil.test", wantOrigin: "", wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://app.test", wantOrigin: "*", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/habits", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
				t.Errorf("allow methods = %q, want PATCH included", got)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Internal Server Error"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRequestLoggingCapturesStatus(t *testing.T) {
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/day", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want first written status", rec.Code)
	}
}

func TestRateLimitWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := NewRateLimiter(ctx, 2, time.Minute)
	h := RateLimitWrites(limiter)(okHandler)

	do := func(method, ip string) int {
		req := httptest.NewRequest(method, "/habits", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := range 2 {
		if code := do(http.MethodPost, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("write %d status = %d, want 200", i, code)
		}
	}
	if code := do(http.MethodPatch, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third write status = %d, want 429", code)
	}
	if code := do(http.MethodGet, "10.0.0.1"); code != http.StatusOK {
		t.Errorf("read status = %d, want reads unaffected", code)
	}
	if code := do(http.MethodPost, "10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, remote: "127.0.0.1:1234", want: "1.2.3.4"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 5.6.7.8 "}, remote: "127.0.0.1:1234", want: "5.6.7.8"},
		{name: "remote addr", remote: "9.9.9.9:4321", want: "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
