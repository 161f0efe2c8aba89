package registration

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the draft before anything leaves the process. Only the
// CNPJ length is enforced; it counts characters, not bytes.
func Validate(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.StructField() == "TaxID" {
				return ErrInvalidTaxID
			}
		}
	}
	return fmt.Errorf("registration: validate draft: %w", err)
}
