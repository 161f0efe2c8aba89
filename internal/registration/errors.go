package registration

import (
	"fmt"

	"github.com/vagas-web/vagas-web/internal/platform/httpx"
)

var (
	// ErrInvalidTaxID blocks a submission whose CNPJ is not 14 characters.
	ErrInvalidTaxID = fmt.Errorf("registration: tax id must have %d characters: %w", TaxIDLength, httpx.ErrValidation)
	// ErrRejected marks a non-2xx backend answer.
	ErrRejected = fmt.Errorf("registration: %w", httpx.ErrUpstreamRejected)
	// ErrUnreachable marks a submission that got no usable answer.
	ErrUnreachable = fmt.Errorf("registration: %w", httpx.ErrUpstreamUnavailable)
	// ErrSubmitInProgress is returned when Submit is called on a loading form.
	ErrSubmitInProgress = fmt.Errorf("registration: submit in progress: %w", httpx.ErrConflict)
)
