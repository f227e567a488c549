package middleware

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("first"), tag("second"), tag("third"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := "first,second,third,handler"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestChain_NoMiddlewares_ReturnsHandler(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(okHandler("plain")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Body.String() != "plain" {
		t.Errorf("body = %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{"generates when absent", ""},
		{"preserves existing", "req-abc-123"},
		{"replaces markup", "<script>"},
		{"replaces newline", "a\nforged=1"},
		{"replaces oversized", strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Header().Get("X-Request-ID") != seen {
				t.Errorf("header %q does not match context %q", rr.Header().Get("X-Request-ID"), seen)
			}
			if validRequestID(tt.incoming) {
				if seen != tt.incoming {
					t.Errorf("request id = %q, want %q", seen, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("generated id %q is not a uuid: %v", seen, err)
			}
		})
	}
}

func TestGetRequestID_MissingOrWrongType(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
	ctx := context.WithValue(context.Background(), RequestIDKey, 42)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID() = %q, want empty for wrong type", got)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_NoPanic_ProceedsNormally(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Recovery(okHandler("success")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "success" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestRecovery_WithPanic_ReturnsSiteError(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("unsubscribe exploded")
	})

	rr := httptest.NewRecorder()
	Recovery(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/unsubscribe", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body["error"] != "Something went wrong" {
		t.Errorf("body = %v", body)
	}
}

func TestRecovery_PanicAfterWrite_KeepsResponse(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("partial,csv\n"))
		panic("export exploded")
	})

	rr := httptest.NewRecorder()
	Recovery(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/signups/export", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want the already sent 200", rr.Code)
	}
	if rr.Body.String() != "partial,csv\n" {
		t.Errorf("body = %q, want no error appended", rr.Body.String())
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		origin      string
		method      string
		wantOrigin  string
		wantStatus  int
		wantHandler bool
	}{
		{"allowed origin", []string{"https://joinguild.app"}, "https://joinguild.app", http.MethodGet, "https://joinguild.app", http.StatusOK, true},
		{"disallowed origin", []string{"https://joinguild.app"}, "https://evil.example", http.MethodGet, "", http.StatusOK, true},
		{"wildcard", []string{"*"}, "https://anywhere.example", http.MethodGet, "https://anywhere.example", http.StatusOK, true},
		{"no origin header", []string{"https://joinguild.app"}, "", http.MethodGet, "", http.StatusOK, true},
		{"preflight", []string{"https://joinguild.app"}, "https://joinguild.app", http.MethodOptions, "https://joinguild.app", http.StatusNoContent, false},
		{"preflight from disallowed origin", []string{"https://joinguild.app"}, "https://evil.example", http.MethodOptions, "", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(tt.method, "/api/waitlist", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rr.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want Origin", got)
			}
			wantMethods := ""
			if tt.wantStatus == http.StatusNoContent {
				wantMethods = "GET, POST, OPTIONS"
			}
			if got := rr.Header().Get("Access-Control-Allow-Methods"); got != wantMethods {
				t.Errorf("Allow-Methods = %q, want %q", got, wantMethods)
			}
			if called != tt.wantHandler {
				t.Errorf("handler called = %v, want %v", called, tt.wantHandler)
			}
		})
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_AcceptsGzip_CompressesResponse(t *testing.T) {
	t.Parallel()

	const payload = "<html>landing page body that compresses</html>"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()

	Compress(okHandler(payload)).ServeHTTP(rr, req)

	if enc := rr.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", enc)
	}
	reader, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer func() { _ = reader.Close() }()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != payload {
		t.Errorf("decompressed = %q", got)
	}
}

func TestCompress_DropsHandlerContentLength(t *testing.T) {
	t.Parallel()

	const payload = "body{margin:0}"
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write([]byte(payload))
	})

	req := httptest.NewRequest(http.MethodGet, "/static/site.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	Compress(h).ServeHTTP(rr, req)

	if got := rr.Header().Get("Content-Length"); got != "" {
		t.Errorf("Content-Length = %q, want it removed from a gzip body", got)
	}
	reader, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != payload {
		t.Errorf("decompressed = %q", got)
	}
}

func TestCompress_BodylessResponseUntouched(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/waitlist", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	Compress(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("Content-Encoding") != "" || rr.Body.Len() != 0 {
		t.Errorf("204 got encoding %q and %d body bytes", rr.Header().Get("Content-Encoding"), rr.Body.Len())
	}
}

func TestCompress_Skips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		acceptEncoding string
	}{
		{"no gzip accepted", "/", ""},
		{"csv export", "/api/admin/signups/export", "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()

			Compress(okHandler("plain body")).ServeHTTP(rr, req)

			if rr.Header().Get("Content-Encoding") == "gzip" {
				t.Error("response should not be compressed")
			}
			if rr.Body.String() != "plain body" {
				t.Errorf("body = %q", rr.Body.String())
			}
		})
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusServiceUnavailable)

	if rw.statusCode != http.StatusServiceUnavailable {
		t.Errorf("captured = %d", rw.statusCode)
	}
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("forwarded = %d", rr.Code)
	}

	_, _ = rw.Write([]byte("busy"))
	if rw.bytes != 4 {
		t.Errorf("bytes = %d, want 4", rw.bytes)
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	rr := httptest.NewRecorder()
	Logger(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/waitlist", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "created" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}
