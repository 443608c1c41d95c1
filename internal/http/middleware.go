package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"quickpoll/internal/domain/user"
	"quickpoll/internal/metrics"
	"quickpoll/internal/platform/apperr"
	jwtpkg "quickpoll/internal/platform/jwt"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

var slogLogger = slog.Default()

func SetLogger(l *slog.Logger) {
	if l != nil {
		slogLogger = l
	}
}

var tracer = otel.Tracer("quickpoll/http")

// UserLookup resolves the token subject to a stored user.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(jm *jwtpkg.Manager, users UserLookup) func(http.Handler) http.Handler {
	return authenticate(jm, users, true)
}

// OptionalAuthenticate lets requests without an Authorization header through
// as anonymous, but still rejects a header carrying a bad or expired token.
func OptionalAuthenticate(jm *jwtpkg.Manager, users UserLookup) func(http.Handler) http.Handler {
	return authenticate(jm, users, false)
}

func authenticate(jm *jwtpkg.Manager, users UserLookup, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				if required {
					errorResponse(w, apperr.Unauthorized("missing_token", "missing authorization header", nil))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				errorResponse(w, apperr.Unauthorized("invalid_token", "invalid authorization header", nil))
				return
			}

			username, err := jm.Verify(parts[1])
			if errors.Is(err, jwtpkg.ErrTokenExpired) {
				errorResponse(w, apperr.Unauthorized("token_expired", "token expired", err))
				return
			}
			if err != nil {
				errorResponse(w, apperr.Unauthorized("invalid_token", "invalid token", err))
				return
			}

			u, err := users.GetByUsername(r.Context(), username)
			if errors.Is(err, user.ErrUserNotFound) {
				errorResponse(w, apperr.Unauthorized("invalid_token", "unknown token subject", err))
				return
			}
			if err != nil {
				errorResponse(w, err)
				return
			}
			if !u.IsActive {
				errorResponse(w, user.ErrInactiveUser)
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(attribute.Int64("user.id", u.ID))
			ctx := context.WithValue(r.Context(), ctxKeyUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromCtx(r *http.Request) *user.User {
	u, _ := r.Context().Value(ctxKeyUser).(*user.User)
	return u
}

// viewerID is 0 for anonymous requests.
func viewerID(r *http.Request) int64 {
	if u := userFromCtx(r); u != nil {
		return u.ID
	}
	return 0
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Tracing starts a server span per request; the name gets the route pattern
// once chi has matched it.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.method", r.Method)),
		)
		defer span.End()

		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r.WithContext(ctx))

		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			span.SetName(r.Method + " " + rc.RoutePattern())
			span.SetAttributes(attribute.String("http.route", rc.RoutePattern()))
		}
		span.SetAttributes(attribute.Int("http.status_code", rw.Status()))
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r)

		status := rw.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		metrics.IncRequest(r.Method, route, status)

		slogLogger.Info("request",
			"method", r.Method,
			"path", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
