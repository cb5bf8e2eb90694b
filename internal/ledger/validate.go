package ledger

import (
	"fmt"
	"strings"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/model"
)

// ValidationError describes one problem with a transaction record.
type ValidationError struct {
	Name        string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.Name, e.Description)
}

// ValidateTransaction checks a single record and returns every problem found.
func ValidateTransaction(tx model.Transaction) []ValidationError {
	var verrs []ValidationError

	if strings.TrimSpace(tx.Name) == "" {
		verrs = append(verrs, ValidationError{Name: tx.Name, Field: "name", Description: "must not be empty"})
	}
	if !tx.Kind.Valid() {
		verrs = append(verrs, ValidationError{Name: tx.Name, Field: "kind", Description: fmt.Sprintf("unknown kind %q", tx.Kind)})
	}
	if !tx.Frequency.Valid() {
		verrs = append(verrs, ValidationError{Name: tx.Name, Field: "frequency", Description: fmt.Sprintf("unknown frequency %q", tx.Frequency)})
	}
	if tx.Amount.IsNegative() {
		verrs = append(verrs, ValidationError{Name: tx.Name, Field: "amount", Description: fmt.Sprintf("%s is negative", tx.Amount)})
	}

	return verrs
}

// Validate wraps ValidateTransaction into a single error matching
// errs.ErrInvalid, or nil.
func Validate(tx model.Transaction) error {
	verrs := ValidateTransaction(tx)
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalid, strings.Join(msgs, "; "))
}
