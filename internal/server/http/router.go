package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey struct{}

// RequestID returns the id assigned to the request by the server middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// NewServer mounts the engine endpoints and, when webDir is set, the static
// web client, behind request-id, access-log and recovery middleware.
func NewServer(h *Handler, webDir string, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	mux.Handle("/move", h)
	mux.Handle("/board.svg", h)
	if webDir != "" {
		registerStatic(mux, webDir)
	}
	return withRequestID(log, withAccessLog(withRecover(mux)))
}

func withRequestID(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		l := log.With().Str("req", id).Logger()
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		ctx = l.WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// withRecover turns a panic in a handler into a plain 500.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				zerolog.Ctx(r.Context()).Error().Interface("panic", v).Msg("handler panicked")
				writeJSONError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// registerStatic serves the web client under /web/ and sends / there.
// Phones get the compact layout via ?view=mobile unless they asked otherwise.
func registerStatic(mux *http.ServeMux, webDir string) {
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		target := "/web/"
		if r.URL.Query().Get("view") != "desktop" && isMobileUA(r.UserAgent()) {
			target += "?view=mobile"
		}
		w.Header().Set("Vary", "User-Agent")
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func isMobileUA(ua string) bool {
	ua = strings.ToLower(ua)
	for _, n := range []string{"android", "iphone", "ipad", "mobile"} {
		if strings.Contains(ua, n) {
			return true
		}
	}
	return false
}
