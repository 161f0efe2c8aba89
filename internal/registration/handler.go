package registration

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/platform/httpx"
	"github.com/vagas-web/vagas-web/internal/shared"
	"github.com/vagas-web/vagas-web/internal/view"
)

// Path is where the registration form is served.
const Path = "/cadastroEmpresa"

// multipartMemory is how much of an upload is kept in memory before spilling
// to temporary files. The body size itself is capped by the router.
const multipartMemory = 8 << 20

// Handler wires HTTP endpoints for the company registration form.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers registration routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get(Path, h.showForm)
	r.Post(Path, h.handleSubmit)
}

type draftView struct {
	CompanyName  string
	TaxID        string
	Email        string
	BusinessArea string
}

type pageData struct {
	Draft       draftView
	State       State
	Alert       string
	LogoData    string
	LogoPreview template.URL
	TaxIDLength int
}

type registeredResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	Redirect        string `json:"redirect"`
	RedirectAfterMS int64  `json:"redirect_after_ms"`
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageData{TaxIDLength: TaxIDLength}, nil)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	ctx := r.Context()
	printer := i18n.FromContext(ctx)
	draft, carried := h.draftFromRequest(r)
	form := h.service.NewForm(shared.SessionID(ctx), draft, printer)

	// The form is fresh, so Submit cannot report ErrSubmitInProgress.
	outcome, _ := form.Submit(ctx)
	logoData := carried
	if outcome.Kind != KindRegistered {
		logoData = h.carryLogo(draft.Logo, carried)
	}

	if httpx.WantsJSON(r) {
		h.respondJSON(w, outcome)
		return
	}

	state := form.State()
	switch outcome.Kind {
	case KindRegistered:
		if sess := shared.SessionFromContext(ctx); sess != nil {
			sess.AddFlash(shared.FlashMessage{Kind: "success", Message: outcome.Message})
		}
		refresh := &view.Refresh{Path: outcome.Redirect.Path, After: outcome.Redirect.After}
		w.Header().Set("Refresh", refresh.Header())
		h.render(w, r, http.StatusOK, h.pageFor(draft, logoData, state, ""), refresh)
	case KindInvalid:
		// The alert replaces the inline error: it blocks before any call.
		state.Error = ""
		status, _ := httpx.StatusFor(outcome.Err())
		h.render(w, r, status, h.pageFor(draft, logoData, state, outcome.Message), nil)
	default:
		// The form stays editable with the inline error.
		h.render(w, r, http.StatusOK, h.pageFor(draft, logoData, state, ""), nil)
	}
}

// draftFromRequest reads the form fields. A freshly chosen file wins over a
// logo carried back from a previous render.
func (h *Handler) draftFromRequest(r *http.Request) (Draft, string) {
	draft := Draft{
		CompanyName:  r.PostFormValue("company_name"),
		TaxID:        r.PostFormValue("tax_id"),
		Email:        r.PostFormValue("email"),
		Password:     r.PostFormValue("password"),
		BusinessArea: r.PostFormValue("business_area"),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["logo"]; len(files) > 0 {
			draft.Logo = LogoFromMultipart(files[0])
		}
	}
	carried := r.PostFormValue("logo_data")
	if draft.Logo == nil && carried != "" {
		logo, err := LogoFromDataURI(carried)
		if err != nil {
			h.logger.Warn("discarding carried logo", slog.Any("error", err))
			carried = ""
		} else {
			draft.Logo = logo
		}
	}
	return draft, carried
}

// carryLogo returns the data URI the re-rendered form sends back, so a failed
// attempt does not make the user pick the file again.
func (h *Handler) carryLogo(logo *Logo, carried string) string {
	if carried != "" || logo == nil {
		return carried
	}
	uri, err := EncodeLogo(logo)
	if err != nil || uri == nil {
		return ""
	}
	return *uri
}

func (h *Handler) pageFor(d Draft, logoData string, state State, alert string) pageData {
	data := pageData{
		Draft: draftView{
			CompanyName:  d.CompanyName,
			TaxID:        d.TaxID,
			Email:        d.Email,
			BusinessArea: d.BusinessArea,
		},
		State:       state,
		Alert:       alert,
		LogoData:    logoData,
		TaxIDLength: TaxIDLength,
	}
	if IsImageDataURI(logoData) {
		data.LogoPreview = template.URL(logoData)
	}
	return data
}

func (h *Handler) respondJSON(w http.ResponseWriter, outcome Outcome) {
	if err := outcome.Err(); err != nil {
		httpx.RespondError(w, err, outcome.Message)
		return
	}
	httpx.JSON(w, http.StatusOK, registeredResponse{
		Status:          string(outcome.Kind),
		Message:         outcome.Message,
		Redirect:        outcome.Redirect.Path,
		RedirectAfterMS: outcome.Redirect.After.Milliseconds(),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData, refresh *view.Refresh) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("ensure csrf token", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	printer := i18n.FromContext(r.Context())
	viewData := view.TemplateData{
		Title:       printer.T(i18n.RegisterTitle),
		CSRFToken:   csrfToken,
		CurrentPath: r.URL.Path,
		Locale:      printer,
		Refresh:     refresh,
		Data:        data,
	}
	if err := h.templates.RenderStatus(w, status, "pages/register.html", viewData); err != nil {
		h.logger.Error("render registration", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
