package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/storefront/internal/handler"
	"github.com/msomdec/storefront/internal/service"
)

func loginToken(t *testing.T, auth *service.AuthService, email string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := auth.Register(ctx, "Valid", "User", email, "password123", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

func expectRedirectToStart(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	auth := newTestAuthService(t)
	token := loginToken(t, auth, "valid@example.com")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handler.UserFromContext(r.Context())
		if user != nil {
			gotUser = user.FirstName
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "Valid" {
		t.Fatalf("expected user 'Valid', got %q", gotUser)
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	auth := newTestAuthService(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	expectRedirectToStart(t, w)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	auth := newTestAuthService(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "invalid.jwt.token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	expectRedirectToStart(t, w)
}

func TestRequireAuth_LoggedOutToken(t *testing.T) {
	auth := newTestAuthService(t)
	token := loginToken(t, auth, "gone@example.com")

	if err := auth.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	expectRedirectToStart(t, w)
}

func TestOptionalAuth_WithToken(t *testing.T) {
	auth := newTestAuthService(t)
	token := loginToken(t, auth, "opt@example.com")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotUser = user.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.OptionalAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "opt@example.com" {
		t.Fatalf("expected user opt@example.com, got %q", gotUser)
	}
}

func TestOptionalAuth_WithoutToken(t *testing.T) {
	auth := newTestAuthService(t)

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if handler.UserFromContext(r.Context()) != nil {
			t.Error("expected nil user in context for unauthenticated request")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.OptionalAuth(auth, inner).ServeHTTP(w, req)

	if !called || w.Code != http.StatusOK {
		t.Fatalf("expected inner handler to run with 200, got called=%v code=%d", called, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	handler.RequestID(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected request id in context")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Fatalf("expected header %q to match context id %q", got, seen)
	}
}

func TestLogger_PassesThroughResponse(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	w := httptest.NewRecorder()
	handler.Logger(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pot", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", w.Code)
	}
	if w.Body.String() != "short and stout" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	handler.SecurityHeaders(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy", "Content-Security-Policy"} {
		if w.Header().Get(name) == "" {
			t.Errorf("expected %s header to be set", name)
		}
	}
}

func TestRateLimit(t *testing.T) {
	limiter := service.NewRateLimiter(0, 1)
	defer limiter.Stop()

	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ })
	h := handler.RateLimit(limiter, inner)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i+1, want, w.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("expected inner handler to run once, got %d", calls)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different client, got %d", w.Code)
	}
}

func TestExpiredSessionRedirects(t *testing.T) {
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4, -time.Second)
	user, err := auth.Register(context.Background(), "Old", "Timer", "old@example.com", "pw", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.StartSession(context.Background(), user)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()
	handler.RequireAuth(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})).ServeHTTP(w, req)

	expectRedirectToStart(t, w)
}
