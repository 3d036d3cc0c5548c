package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"ecourts/api/internal/core/domain"
)

type requestIDKey struct{}

// RequestID assigns every request a correlation ID, honouring one supplied
// by the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the correlation ID set by RequestID, if any.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// StructuredLogger logs one line per request with method, path, status, and
// duration.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", GetRequestID(r.Context())))
		})
	}
}

// MaxBytes caps incoming request bodies.
func MaxBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket.
type RateLimiter struct {
	visitors sync.Map
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{}
	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Real-IP")
		if ip == "" {
			ip = r.RemoteAddr
		}

		v, _ := rl.visitors.LoadOrStore(ip, &visitor{
			limiter:  rate.NewLimiter(rate.Limit(10), 30),
			lastSeen: time.Now(),
		})

		vis := v.(*visitor)
		vis.lastSeen = time.Now()

		if !vis.limiter.Allow() {
			http.Error(w, `{"status":"error","code":429,"message":"Rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		rl.visitors.Range(func(key, value interface{}) bool {
			if time.Since(value.(*visitor).lastSeen) > 3*time.Minute {
				rl.visitors.Delete(key)
			}
			return true
		})
	}
}

// UpstreamAuth resolves the upstream bearer token for a request: a caller
// that already holds one supplies it as `Authorization: Bearer <token>`,
// otherwise a fresh token is fetched per request. The token is opaque and is
// never parsed here.
type UpstreamAuth struct {
	Issuer domain.TokenIssuer
	Logger *slog.Logger
}

func NewUpstreamAuth(issuer domain.TokenIssuer, logger *slog.Logger) *UpstreamAuth {
	return &UpstreamAuth{Issuer: issuer, Logger: logger}
}

func (m *UpstreamAuth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r)
		if token == "" {
			var err error
			token, err = m.Issuer.FetchToken(r.Context())
			if err != nil {
				m.Logger.Error("token retrieval failed",
					slog.Any("error", err),
					slog.String("request_id", GetRequestID(r.Context())))
				http.Error(w,
					`{"status":"error","code":401,"message":"Failed to authenticate with e-courts API"}`,
					http.StatusUnauthorized)
				return
			}
		}

		ctx := context.WithValue(r.Context(), domain.TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
