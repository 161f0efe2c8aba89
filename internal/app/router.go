package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/navigation"
	"github.com/vagas-web/vagas-web/internal/observability"
	"github.com/vagas-web/vagas-web/internal/platform/cache"
	"github.com/vagas-web/vagas-web/internal/platform/httpx"
	"github.com/vagas-web/vagas-web/internal/registration"
	"github.com/vagas-web/vagas-web/internal/shared"
	"github.com/vagas-web/vagas-web/internal/view"
	"github.com/vagas-web/vagas-web/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Templates           *view.Engine
	SessionManager      *shared.SessionManager
	CSRFManager         *shared.CSRFManager
	Redis               redis.UniversalClient
	RegistrationHandler *registration.Handler
	NavigationHandler   *navigation.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with the front-end defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := cache.Ping(r.Context(), params.Redis); err != nil {
			logger.Warn("readiness probe", slog.Any("error", err))
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "redis": err.Error()})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// Static files skip sessions, CSRF and rate limiting.
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			csrfToken, err := params.CSRFManager.EnsureToken(r.Context(), sess)
			if err != nil {
				logger.Error("ensure csrf token", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			printer := i18n.FromContext(r.Context())
			data := view.TemplateData{
				Title:       printer.T(i18n.AppName),
				CSRFToken:   csrfToken,
				Flash:       sess.PopFlash(),
				CurrentPath: r.URL.Path,
				Locale:      printer,
			}
			if err := params.Templates.Render(w, "pages/home.html", data); err != nil {
				logger.Error("render home", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})

		if params.RegistrationHandler != nil {
			params.RegistrationHandler.MountRoutes(r)
		}
		if params.NavigationHandler != nil {
			params.NavigationHandler.MountRoutes(r)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
