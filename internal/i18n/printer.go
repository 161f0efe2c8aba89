package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var matcher = language.NewMatcher(supported)

// Printer renders catalog messages for one language.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewPrinter returns a Printer for tag. Unsupported tags resolve to the
// closest supported language.
func NewPrinter(tag language.Tag) *Printer {
	matched, _, _ := matcher.Match(tag)
	base, _ := matched.Base()
	for _, candidate := range supported {
		if b, _ := candidate.Base(); b == base {
			matched = candidate
			break
		}
	}
	return &Printer{tag: matched, printer: message.NewPrinter(matched, message.Catalog(messages))}
}

// T returns the message for key.
func (p *Printer) T(key string) string {
	if p == nil {
		return DefaultPrinter().T(key)
	}
	return p.printer.Sprintf(key)
}

// Lang returns the BCP 47 tag for the html lang attribute.
func (p *Printer) Lang() string {
	if p == nil {
		return Default.String()
	}
	return p.tag.String()
}

// DefaultPrinter returns the Brazilian Portuguese printer.
func DefaultPrinter() *Printer {
	return NewPrinter(Default)
}

// Negotiate picks the best supported language for an Accept-Language value.
func Negotiate(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return matched
}

type printerContextKey struct{}

// Middleware attaches the negotiated Printer to the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := NewPrinter(Negotiate(r.Header.Get("Accept-Language")))
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), printerContextKey{}, p)))
	})
}

// FromContext returns the request Printer, or the default one.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(printerContextKey{}).(*Printer); ok {
		return p
	}
	return DefaultPrinter()
}
