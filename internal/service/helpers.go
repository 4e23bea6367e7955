package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studycal/internal/domain"
)

// formatValidationErrors folds a collected error list into one error that
// still matches domain.ErrValidation.
func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "course file validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s: %w", b.String(), domain.ErrValidation)
}
