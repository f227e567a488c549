package middleware

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/guild/api/internal/model"
)

// Middleware wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Chain wraps handler so the first middleware runs first
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

type contextKey string

const (
	RequestIDKey contextKey = "requestID"
	ClaimsKey    contextKey = "claims"
)

// maxRequestIDLen bounds a caller supplied X-Request-ID
const maxRequestIDLen = 64

// RequestID tags the request with an id, reusing the caller's X-Request-ID
// when it is short and made of safe characters. The id is echoed back in the
// response header and logged with every line for the request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDKey, id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// GetRequestID returns the id set by RequestID, or ""
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Logger writes one line per request. Health checks and static assets log
// at debug so the info stream shows only page and API traffic.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		switch {
		case rec.statusCode >= http.StatusInternalServerError:
			level = slog.LevelError
		case r.URL.Path == "/health", strings.HasPrefix(r.URL.Path, "/static/"):
			level = slog.LevelDebug
		}

		slog.Log(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.statusCode),
			slog.Int64("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", GetRequestID(r.Context())),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
	})
}

// Recovery turns a handler panic into the site's generic 500 body. When the
// handler already started the response only the log line is written.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			slog.Error("panic recovered",
				slog.Any("error", err),
				slog.String("path", r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
				slog.Bool("response_started", rec.wroteHeader),
				slog.String("stack", string(debug.Stack())),
			)
			if !rec.wroteHeader {
				model.NewSiteInternalError().WriteJSON(w)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

// CORS answers cross-origin requests from allowedOrigins ("*" allows any).
// A preflight from any other origin is refused with 403.
func CORS(allowedOrigins []string) Middleware {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			_, ok := allowed[origin]
			ok = origin != "" && (ok || allowAll)
			if ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			h.Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

var gzipWriters = sync.Pool{
	New: func() any { return gzip.NewWriter(nil) },
}

// Compress gzips bodies for clients that accept it. CSV exports stream
// uncompressed so the download can show progress.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || strings.HasSuffix(r.URL.Path, "/export") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Add("Vary", "Accept-Encoding")
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzw := &gzipResponseWriter{ResponseWriter: w}
		defer gzw.close()
		next.ServeHTTP(gzw, r)
	})
}

// responseWriter records the status and body size
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// gzipResponseWriter starts the gzip stream on the first body write, so
// bodiless responses (204, 304) go out untouched.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
	bodyless    bool
}

func (grw *gzipResponseWriter) WriteHeader(code int) {
	if grw.wroteHeader {
		return
	}
	grw.wroteHeader = true
	grw.bodyless = code == http.StatusNoContent || code == http.StatusNotModified
	if !grw.bodyless {
		grw.Header().Set("Content-Encoding", "gzip")
		grw.Header().Del("Content-Length")
	}
	grw.ResponseWriter.WriteHeader(code)
}

func (grw *gzipResponseWriter) Write(b []byte) (int, error) {
	if !grw.wroteHeader {
		grw.WriteHeader(http.StatusOK)
	}
	if grw.bodyless {
		return grw.ResponseWriter.Write(b)
	}
	if grw.gz == nil {
		grw.gz = gzipWriters.Get().(*gzip.Writer)
		grw.gz.Reset(grw.ResponseWriter)
	}
	return grw.gz.Write(b)
}

func (grw *gzipResponseWriter) close() {
	if grw.gz == nil {
		return
	}
	_ = grw.gz.Close()
	gzipWriters.Put(grw.gz)
	grw.gz = nil
}
