package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/shared"
	"github.com/vagas-web/vagas-web/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Locale      *i18n.Printer
	Refresh     *Refresh
	Data        any
}

// Refresh schedules a client-side navigation once the page has loaded.
type Refresh struct {
	Path  string
	After time.Duration
}

// Seconds rounds the delay up to whole seconds, the unit of the refresh
// header and meta tag.
func (r *Refresh) Seconds() int64 {
	if r.After <= 0 {
		return 0
	}
	return int64((r.After + time.Second - 1) / time.Second)
}

// Header formats the value of the Refresh response header.
func (r *Refresh) Header() string {
	return strconv.FormatInt(r.Seconds(), 10) + "; url=" + r.Path
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData and a 200 status.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes a named template into a buffer and only then writes
// headers, so a template error never leaves a half-written page.
func (e *Engine) RenderStatus(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	if data.Locale == nil {
		data.Locale = i18n.DefaultPrinter()
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("view: execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
