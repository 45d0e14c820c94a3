package handler

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
	log "github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	requestIDContextKey contextKey = "request_id"
)

const authCookieName = "auth_token"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// RequireAuth is middleware that protects routes requiring a session.
// It reads the auth_token cookie, checks the token and its stored session,
// loads the user and injects it into the request context. Requests without
// a live session are redirected to the start page.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not block
// unauthenticated requests. If a valid token is present, the user is injected
// into context; otherwise the request proceeds without a user.
func OptionalAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth)
		if err == nil && user != nil {
			ctx := context.WithValue(r.Context(), userContextKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func authenticateRequest(r *http.Request, auth *service.AuthService) (*domain.User, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return nil, err
	}

	userID, err := auth.ValidateToken(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}

	return auth.GetUserByID(r.Context(), userID)
}

// RequestID tags each request with a fresh id, exposed in the X-Request-Id
// response header and through RequestIDFromContext.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger logs the start and completion of each request with its status,
// size and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := requestLog(r).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		entry.WithField("remote", r.RemoteAddr).Debug("started")

		lw := mutil.WrapWriter(w)
		next.ServeHTTP(lw, r)

		status := lw.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry.WithFields(log.Fields{
			"status":   status,
			"bytes":    lw.BytesWritten(),
			"duration": time.Since(start).String(),
		}).Info("completed")
	})
}

// SecurityHeaders sets conservative browser security headers on every
// response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-eval' https://cdn.jsdelivr.net; "+
				"style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests with 429 once the client's bucket is empty.
func RateLimit(limiter *service.RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !limiter.Allow(ip) {
			requestLog(r).WithField("ip", ip).Warn("rate limited")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			view.ErrorPage(http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.").Render(r.Context(), w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func requestLog(r *http.Request) *log.Entry {
	entry := log.NewEntry(log.StandardLogger())
	if id := RequestIDFromContext(r.Context()); id != "" {
		entry = entry.WithField("request_id", id)
	}
	if user := UserFromContext(r.Context()); user != nil {
		entry = entry.WithField("user_id", user.ID)
	}
	return entry
}
