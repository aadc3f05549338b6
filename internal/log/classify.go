package log

import (
	"errors"

	"gastos/internal/core"
)

// ErrorType maps ledger errors to the ErrorType* categories.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, core.ErrValidation):
		return ErrorTypeValidation
	case errors.Is(err, core.ErrNotFound):
		return ErrorTypeNotFound
	case errors.Is(err, core.ErrInvalidCriterion):
		return ErrorTypeInvalidCriterion
	case errors.Is(err, core.ErrEmptyDataset):
		return ErrorTypeEmptyDataset
	case errors.Is(err, core.ErrPersistence):
		return ErrorTypePersistence
	default:
		return ErrorTypeInternal
	}
}
