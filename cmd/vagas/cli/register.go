package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vagas-web/vagas-web/internal/i18n"
	"github.com/vagas-web/vagas-web/internal/registration"
)

// Exit codes of the register command.
const (
	ExitRegistered  = 0
	ExitUsage       = 1
	ExitInvalid     = 2
	ExitRejected    = 3
	ExitUnreachable = 4
)

// RegisterOptions configures one run of the register command.
type RegisterOptions struct {
	Name       string
	TaxID      string
	Email      string
	Password   string
	Area       string
	LogoPath   string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// RegisterSummary is the JSON report of a run.
type RegisterSummary struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	BackendStatus   int    `json:"backend_status,omitempty"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMS int64  `json:"redirect_after_ms,omitempty"`
}

// RegisterCLI submits a company registration from the terminal.
type RegisterCLI struct {
	service *registration.Service
	msgs    *i18n.Printer
}

// NewRegisterCLI constructs the helper around service. msgs may be nil.
func NewRegisterCLI(service *registration.Service, msgs *i18n.Printer) (*RegisterCLI, error) {
	if service == nil {
		return nil, errors.New("register cli: service not configured")
	}
	if msgs == nil {
		msgs = i18n.DefaultPrinter()
	}
	return &RegisterCLI{service: service, msgs: msgs}, nil
}

// RegisterCommand runs the flow once and returns the process exit code.
func (c *RegisterCLI) RegisterCommand(ctx context.Context, opts RegisterOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	// Fields go through as typed, the same as the web form.
	draft := registration.Draft{
		CompanyName:  opts.Name,
		TaxID:        opts.TaxID,
		Email:        opts.Email,
		Password:     opts.Password,
		BusinessArea: opts.Area,
	}
	if path := strings.TrimSpace(opts.LogoPath); path != "" {
		logo, err := registration.LogoFromFile(path)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "register: %v\n", err)
			return ExitUsage
		}
		draft.Logo = logo
	}

	var formOpts []registration.FormOption
	if !opts.JSONOutput {
		formOpts = append(formOpts, registration.WithObserver(func(s registration.State) {
			if s.Loading {
				fmt.Fprintln(opts.Stdout, c.msgs.T(i18n.RegisterLoading))
			}
		}))
	}
	form := c.service.NewForm("", draft, c.msgs, formOpts...)
	outcome, err := form.Submit(ctx)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "register: %v\n", err)
		return ExitUsage
	}

	if err := writeRegisterOutput(opts, summarize(outcome)); err != nil {
		fmt.Fprintf(opts.Stderr, "register: %v\n", err)
		return ExitUsage
	}
	return exitCodeFor(outcome.Kind)
}

func summarize(o registration.Outcome) RegisterSummary {
	summary := RegisterSummary{
		Status:        string(o.Kind),
		Message:       o.Message,
		BackendStatus: o.Status,
	}
	if o.Redirect != nil {
		summary.Redirect = o.Redirect.Path
		summary.RedirectAfterMS = o.Redirect.After.Milliseconds()
	}
	return summary
}

func writeRegisterOutput(opts RegisterOptions, summary RegisterSummary) error {
	if opts.JSONOutput {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	out := opts.Stdout
	if summary.Status != string(registration.KindRegistered) {
		out = opts.Stderr
	}
	_, err := fmt.Fprintln(out, summary.Message)
	return err
}

func exitCodeFor(kind registration.Kind) int {
	switch kind {
	case registration.KindRegistered:
		return ExitRegistered
	case registration.KindInvalid:
		return ExitInvalid
	case registration.KindRejected:
		return ExitRejected
	default:
		return ExitUnreachable
	}
}
