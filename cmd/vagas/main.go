package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vagas-web/vagas-web/cmd/vagas/cli"
	"github.com/vagas-web/vagas-web/internal/app"
	"github.com/vagas-web/vagas-web/internal/backend"
	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/navigation"
	"github.com/vagas-web/vagas-web/internal/observability"
	"github.com/vagas-web/vagas-web/internal/platform/cache"
	"github.com/vagas-web/vagas-web/internal/registration"
	"github.com/vagas-web/vagas-web/internal/shared"
	"github.com/vagas-web/vagas-web/internal/view"
)

// exitError carries a process exit code out of a cobra command.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		stop()
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	stop()
	os.Exit(1)
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vagas",
		Short:         "Job board front-end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), registerCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func registerCmd() *cobra.Command {
	var opts cli.RegisterOptions
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a company from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := app.NewLoggerTo(cfg, cmd.ErrOrStderr())
			client := backend.NewClient(cfg.BackendURL, cfg.BackendRegisterPath, cfg.BackendTimeout)
			service := registration.NewService(logger, client, nil, registration.Config{
				RedirectPath:  cfg.RegistrationRedirectPath,
				RedirectDelay: cfg.RegistrationRedirectDelay,
			})
			printer := i18n.NewPrinter(i18n.Negotiate(os.Getenv("LANG")))
			registerCLI, err := cli.NewRegisterCLI(service, printer)
			if err != nil {
				return err
			}
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			if code := registerCLI.RegisterCommand(cmd.Context(), opts); code != cli.ExitRegistered {
				return exitError{code: code}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.Name, "name", "", "Company name")
	flags.StringVar(&opts.TaxID, "tax-id", "", "CNPJ, 14 characters")
	flags.StringVar(&opts.Email, "email", "", "Company e-mail")
	flags.StringVar(&opts.Password, "password", "", "Account password")
	flags.StringVar(&opts.Area, "area", "", "Business area")
	flags.StringVar(&opts.LogoPath, "logo", "", "Path to the company logo")
	flags.BoolVar(&opts.JSONOutput, "json", false, "Print the outcome as JSON")
	return cmd
}

func serve(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		return err
	}

	metrics := observability.NewMetrics()
	client := backend.NewClient(cfg.BackendURL, cfg.BackendRegisterPath, cfg.BackendTimeout)
	registrationService := registration.NewService(logger, client, metrics, registration.Config{
		RedirectPath:  cfg.RegistrationRedirectPath,
		RedirectDelay: cfg.RegistrationRedirectDelay,
	})

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Templates:           templates,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		Redis:               redisClient,
		RegistrationHandler: registration.NewHandler(logger, registrationService, templates, csrfManager),
		NavigationHandler:   navigation.NewHandler(logger, templates, csrfManager),
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("backend", client.Endpoint()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return err
	}
	return nil
}
