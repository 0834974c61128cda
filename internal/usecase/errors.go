// Package usecase holds helpers shared by the orchestration packages below it.
package usecase

import (
	"errors"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/apperr"
)

// NotFoundAs turns a missing record into apperr.ErrNotFound with the given
// message. Any other error is returned unchanged.
func NotFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}

func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// TransitionObserver is told about every committed loan status change.
type TransitionObserver interface {
	LoanTransition(action, status string)
}
