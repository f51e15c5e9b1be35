package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureHandler records the request context it was invoked with.
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})

	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := httptest.NewRecorder()
	Chain(handler, tag("1"), tag("2"), tag("3")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Body.String() != "123H" {
		t.Errorf("expected '123H', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	responseID := rr.Header().Get("X-Request-ID")
	if responseID == "" {
		t.Fatal("expected X-Request-ID header in response")
	}
	// Generated IDs are UUIDs: 36 chars, 4 hyphens.
	if len(responseID) != 36 || strings.Count(responseID, "-") != 4 {
		t.Errorf("expected UUID-shaped request ID, got %q", responseID)
	}
	if GetRequestID(handler.ctx) != responseID {
		t.Errorf("context ID %q should match response header %q", GetRequestID(handler.ctx), responseID)
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "existing-request-id")
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "existing-request-id" {
		t.Errorf("expected preserved ID, got %q", got)
	}
}

func TestGetRequestID_MissingOrWrongType(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	ctx := context.WithValue(context.Background(), RequestIDKey, 12345)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty string for wrong type, got %q", got)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_WithPanic_Returns500Problem(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Internal Server Error") {
		t.Errorf("expected error title in body, got %q", rr.Body.String())
	}
}

func TestRecovery_NoPanic_ProceedsNormally(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	rr := httptest.NewRecorder()
	Recovery(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "success" {
		t.Errorf("unexpected response: %d %q", rr.Code, rr.Body.String())
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS_OriginAllowlist(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"allowed origin", []string{"https://example.com"}, "https://example.com", "https://example.com"},
		{"disallowed origin", []string{"https://allowed.com"}, "https://evil.com", ""},
		{"wildcard", []string{"*"}, "https://any-origin.com", "https://any-origin.com"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", tt.origin)
		rr := httptest.NewRecorder()

		CORS(tt.allowed)(handler).ServeHTTP(rr, req)

		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestCORS_Preflight_Returns204(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()

	CORS([]string{"https://example.com"})(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %d for preflight, got %d", http.StatusNoContent, rr.Code)
	}
	if handler.called {
		t.Error("handler should not run for preflight requests")
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_AcceptsGzip(t *testing.T) {
	t.Parallel()

	const body = "Hello, this is a response that should be compressed."
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()

	Compress(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", got)
	}
	reader, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer func() { _ = reader.Close() }()
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(decompressed) != body {
		t.Errorf("decompressed content mismatch: %q", decompressed)
	}
}

func TestCompress_NoGzipAccept(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("uncompressed response"))
	})

	rr := httptest.NewRecorder()
	Compress(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Error("should not compress without gzip Accept-Encoding")
	}
	if rr.Body.String() != "uncompressed response" {
		t.Errorf("expected passthrough body, got %q", rr.Body.String())
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestLogger_CapturesStatusCode(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	rr := httptest.NewRecorder()
	Logger(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/tasks", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "created" {
		t.Errorf("unexpected response: %d %q", rr.Code, rr.Body.String())
	}
}
