package registration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vagas-web/vagas-web/internal/backend"
	"github.com/vagas-web/vagas-web/internal/i18n"
)

// Registrar sends a registration to the backend.
type Registrar interface {
	Register(ctx context.Context, req backend.RegisterRequest) (backend.Result, error)
}

// Recorder receives one observation per settled submission.
type Recorder interface {
	ObserveRegistration(outcome string, elapsed time.Duration)
}

// Localizer resolves user-visible messages.
type Localizer interface {
	T(key string) string
}

// Config tunes what happens after a successful registration.
type Config struct {
	RedirectPath  string
	RedirectDelay time.Duration
}

// Service runs submissions. It is safe for concurrent use; per-submission
// state lives in Form.
type Service struct {
	logger    *slog.Logger
	registrar Registrar
	recorder  Recorder
	redirect  Redirect
	inflight  singleflight.Group
}

// NewService constructs a Service. recorder may be nil.
func NewService(logger *slog.Logger, registrar Registrar, recorder Recorder, cfg Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RedirectPath == "" {
		cfg.RedirectPath = "/"
	}
	if cfg.RedirectDelay < 0 {
		cfg.RedirectDelay = 0
	}
	return &Service{
		logger:    logger,
		registrar: registrar,
		recorder:  recorder,
		redirect:  Redirect{Path: cfg.RedirectPath, After: cfg.RedirectDelay},
	}
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithObserver registers fn to be called with every state change.
func WithObserver(fn func(State)) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.observers = append(f.observers, fn)
		}
	}
}

// Form is one mounted registration form: a draft plus the state shown around
// it. Submissions sharing a non-empty key are coalesced into one backend call.
type Form struct {
	svc       *Service
	key       string
	draft     Draft
	msgs      Localizer
	observers []func(State)

	mu    sync.Mutex
	state State
}

// NewForm mounts a form for draft. msgs may be nil for the default language.
func (s *Service) NewForm(key string, draft Draft, msgs Localizer, opts ...FormOption) *Form {
	if msgs == nil {
		msgs = i18n.DefaultPrinter()
	}
	f := &Form{svc: s, key: key, draft: draft, msgs: msgs}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a snapshot of the form state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns the draft the form was mounted with.
func (f *Form) Draft() Draft {
	return f.draft
}

// Submit runs the flow once. Loading is true from the moment Submit starts
// until the outcome is applied, on every path.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if !f.begin() {
		return Outcome{}, ErrSubmitInProgress
	}
	start := time.Now()
	outcome := Outcome{Kind: KindUnreachable, Message: f.msgs.T(i18n.RegisterUnreachable), err: ErrUnreachable}
	defer func() {
		f.settle(outcome)
		if f.svc.recorder != nil {
			f.svc.recorder.ObserveRegistration(string(outcome.Kind), time.Since(start))
		}
	}()
	outcome = f.svc.run(ctx, f.key, f.draft, f.msgs)
	return outcome, nil
}

func (f *Form) begin() bool {
	f.mu.Lock()
	if f.state.Loading {
		f.mu.Unlock()
		return false
	}
	f.state = State{Loading: true}
	snapshot := f.state
	f.mu.Unlock()
	f.notify(snapshot)
	return true
}

func (f *Form) settle(o Outcome) {
	f.mu.Lock()
	f.state.Loading = false
	switch o.Kind {
	case KindRegistered:
		f.state.Success = true
	default:
		f.state.Error = o.Message
	}
	snapshot := f.state
	f.mu.Unlock()
	f.notify(snapshot)
}

func (f *Form) notify(s State) {
	for _, fn := range f.observers {
		fn(s)
	}
}

func (s *Service) run(ctx context.Context, key string, draft Draft, msgs Localizer) Outcome {
	logger := s.logger.With(slog.String("company", draft.CompanyName))

	if err := Validate(draft); err != nil {
		logger.Info("registration blocked by validation", slog.Any("error", err))
		if !errors.Is(err, ErrInvalidTaxID) {
			err = fmt.Errorf("%w: %w", ErrInvalidTaxID, err)
		}
		return Outcome{Kind: KindInvalid, Message: msgs.T(i18n.RegisterInvalidTaxID), err: err}
	}

	photo, err := EncodeLogo(draft.Logo)
	if err != nil {
		logger.Warn("registration logo encoding failed", slog.Any("error", err))
		return unreachable(msgs, err)
	}

	req := backend.RegisterRequest{
		Name:     draft.CompanyName,
		Email:    draft.Email,
		TaxID:    draft.TaxID,
		Password: draft.Password,
		Role:     draft.BusinessArea,
		Photo:    photo,
	}
	res, err := s.send(ctx, key, req)
	if err != nil {
		logger.Warn("registration backend unreachable", slog.Any("error", err))
		return unreachable(msgs, err)
	}

	if !res.OK() {
		message := res.Message
		if message == "" {
			message = msgs.T(i18n.RegisterFailed)
		}
		logger.Warn("registration rejected", slog.Int("status", res.Status), slog.String("message", res.Message))
		return Outcome{
			Kind:    KindRejected,
			Message: message,
			Status:  res.Status,
			err:     fmt.Errorf("%w: backend status %d", ErrRejected, res.Status),
		}
	}

	logger.Info("company registered", slog.Int("status", res.Status))
	redirect := s.redirect
	return Outcome{
		Kind:     KindRegistered,
		Message:  msgs.T(i18n.RegisterSuccess),
		Status:   res.Status,
		Redirect: &redirect,
	}
}

// send issues the backend call. The call is detached from ctx cancellation:
// a caller that goes away does not abort a registration already on the wire.
// Only identical payloads under the same key share a call.
func (s *Service) send(ctx context.Context, key string, req backend.RegisterRequest) (backend.Result, error) {
	callCtx := context.WithoutCancel(ctx)
	if key == "" {
		return s.registrar.Register(callCtx, req)
	}
	digest, err := requestDigest(req)
	if err != nil {
		return s.registrar.Register(callCtx, req)
	}
	v, err, shared := s.inflight.Do(key+":"+digest, func() (any, error) {
		return s.registrar.Register(callCtx, req)
	})
	if shared {
		s.logger.Debug("registration joined in-flight submission", slog.String("key", key))
	}
	res, _ := v.(backend.Result)
	return res, err
}

func requestDigest(req backend.RegisterRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

func unreachable(msgs Localizer, cause error) Outcome {
	return Outcome{
		Kind:    KindUnreachable,
		Message: msgs.T(i18n.RegisterUnreachable),
		err:     fmt.Errorf("%w: %w", ErrUnreachable, cause),
	}
}
