// Package registration implements the company sign-up flow: capture the
// draft, check the CNPJ, encode the logo, post to the backend and turn the
// answer into form state.
package registration

import (
	"time"
)

// TaxIDLength is the number of characters a CNPJ must have.
const TaxIDLength = 14

// Draft is the in-memory, not-yet-submitted company registration.
type Draft struct {
	CompanyName  string
	TaxID        string `validate:"len=14"`
	Email        string
	Password     string
	BusinessArea string
	Logo         *Logo `validate:"-"`
}

// State is what the form shows while and after a submission runs.
type State struct {
	Loading bool
	Success bool
	Error   string
}

// Kind classifies how a submission settled.
type Kind string

const (
	// KindInvalid means local validation blocked the submission.
	KindInvalid Kind = "invalid"
	// KindRegistered means the backend accepted the company.
	KindRegistered Kind = "registered"
	// KindRejected means the backend answered with a non-2xx status.
	KindRejected Kind = "rejected"
	// KindUnreachable means no usable answer came back.
	KindUnreachable Kind = "unreachable"
)

// Redirect is the navigation scheduled after a successful registration.
type Redirect struct {
	Path  string
	After time.Duration
}

// Outcome is the settled result of one submission.
type Outcome struct {
	Kind     Kind
	Message  string
	Status   int
	Redirect *Redirect

	err error
}

// Err returns nil on success, otherwise an error wrapping the httpx sentinel
// matching the outcome.
func (o Outcome) Err() error {
	return o.err
}
