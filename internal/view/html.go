// Package view renders the storefront HTML pages and Datastar fragments.
package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// htmlWriter remembers the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

// component builds a templ.Component from a function writing markup.
func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func flashList(h *htmlWriter, flashes []string) {
	if len(flashes) == 0 {
		return
	}
	h.raw(`<ul class="flashes" role="alert">`)
	for _, msg := range flashes {
		h.raw(`<li>`)
		h.text(msg)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}
