package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/service"
	"github.com/msomdec/storefront/internal/view"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegisterPage renders the sign-up form, or sends signed-in users to
// the catalog.
// GET /
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
		return
	}
	flashes := popFlash(w, r)
	render(w, r, http.StatusOK, view.RegisterPage(flashes))
}

// HandleRegister creates the account and signs the new user in.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(r.Context(),
		r.FormValue("first_name"),
		r.FormValue("last_name"),
		r.FormValue("email"),
		r.FormValue("password"),
		r.FormValue("confirm_password"),
	)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			setFlash(w, h.cookieSecure, verr.Messages...)
		case errors.Is(err, domain.ErrDuplicateEmail):
			setFlash(w, h.cookieSecure, "An account with that email already exists.")
		default:
			serverError(w, r, "register user", err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := h.auth.StartSession(r.Context(), user)
	if err != nil {
		serverError(w, r, "start session after register", err)
		return
	}
	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

// HandleLoginPage renders the sign-in form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	flashes := popFlash(w, r)
	render(w, r, http.StatusOK, view.LoginPage(flashes))
}

// HandleLogin checks credentials and sets the auth cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		var aerr *domain.AuthError
		if errors.As(err, &aerr) {
			requestLog(r).WithField("reason", aerr.Reason).Info("login rejected")
			setFlash(w, h.cookieSecure, aerr.Reason)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		serverError(w, r, "login user", err)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

// HandleLogout ends the session and clears the auth cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			serverError(w, r, "logout", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.SessionLifetime().Seconds()),
	})
}
