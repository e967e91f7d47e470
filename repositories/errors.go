package repositories

import (
	"errors"
	"fmt"

	"healthbridge/apperrors"

	"gorm.io/gorm"
)

// translate maps gorm and Postgres failures onto the apperrors kinds so
// callers can branch with errors.Is.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrNotFound, err)
	case apperrors.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrConflict, err)
	case apperrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
