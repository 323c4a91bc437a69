package usecase

import (
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

// repoErr passes AppErrors (typically raised inside a locked callback) through
// and classifies everything else.
func repoErr(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	if errors.Is(err, domain.ErrConflict) {
		return apperror.Conflict("The resource was modified concurrently. Please retry.")
	}
	return apperror.Internal(err)
}
