package handler

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "flash"

// setFlash stores messages for the next page the client loads.
func setFlash(w http.ResponseWriter, secure bool, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(strings.Join(msgs, "\n")),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash returns pending messages and clears them.
func popFlash(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil || raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
