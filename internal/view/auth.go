package view

import (
	"context"

	"github.com/a-h/templ"
)

// RegisterPage renders the sign-up form.
func RegisterPage(flashes []string) templ.Component {
	return layout("Register", Nav{}, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Create an account</h1>`)
		flashList(h, flashes)
		h.raw(`<form method="post" action="/register">`)
		h.raw(`<label>First name <input name="first_name" autocomplete="given-name"></label>`)
		h.raw(`<label>Last name <input name="last_name" autocomplete="family-name"></label>`)
		h.raw(`<label>Email <input type="email" name="email" autocomplete="email"></label>`)
		h.raw(`<label>Password <input type="password" name="password" autocomplete="new-password"></label>`)
		h.raw(`<label>Confirm password <input type="password" name="confirm_password" autocomplete="new-password"></label>`)
		h.raw(`<button type="submit">Register</button>`)
		h.raw(`</form><p>Already registered? <a href="/login">Log in</a></p>`)
	}))
}

// LoginPage renders the sign-in form.
func LoginPage(flashes []string) templ.Component {
	return layout("Log in", Nav{}, component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>Log in</h1>`)
		flashList(h, flashes)
		h.raw(`<form method="post" action="/login">`)
		h.raw(`<label>Email <input type="email" name="email" autocomplete="email"></label>`)
		h.raw(`<label>Password <input type="password" name="password" autocomplete="current-password"></label>`)
		h.raw(`<button type="submit">Log in</button>`)
		h.raw(`</form><p>New here? <a href="/">Create an account</a></p>`)
	}))
}

// ErrorPage renders a plain error message for the given status.
func ErrorPage(status int, message string) templ.Component {
	return layout("Error", Nav{}, component(func(_ context.Context, h *htmlWriter) {
		h.rawf(`<h1>Error %d</h1><p>`, status)
		h.text(message)
		h.raw(`</p><p><a href="/">Back to the start page</a></p>`)
	}))
}
