package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/shared"
	"github.com/vagas-web/vagas-web/internal/view"
)

// Handler serves the user area pages behind the shell links.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, templates: templates, csrf: csrf}
}

// MountRoutes registers one GET page per shell link.
func (h *Handler) MountRoutes(r chi.Router) {
	for _, path := range Routes(RoleUser) {
		r.Get(path, h.showPage)
	}
}

type pageData struct {
	Shell Shell
}

func (h *Handler) showPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	role := Role(sess.Get(shared.SessionKeyRole))
	if role == "" {
		role = RoleUser
	}
	printer := i18n.FromContext(ctx)

	csrfToken, err := h.csrf.EnsureToken(ctx, sess)
	if err != nil {
		h.logger.Error("ensure csrf token", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := view.TemplateData{
		Title:       Title(role, r.URL.Path, printer),
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Locale:      printer,
		Data:        pageData{Shell: ShellFor(role, r.URL.Path, sess.Get(shared.SessionKeyUserName), printer)},
	}
	if err := h.templates.Render(w, "pages/area.html", data); err != nil {
		h.logger.Error("render user area", slog.Any("error", err), slog.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
