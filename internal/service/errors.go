package service

import (
	"errors"

	"github.com/templui/okrledger/internal/repository"
)

var (
	ErrForbidden       = errors.New("actor may not act on this resource")
	ErrStorageDisabled = errors.New("export storage is not configured")
)

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrObjectiveNotFound) ||
		errors.Is(err, repository.ErrKeyResultNotFound) ||
		errors.Is(err, repository.ErrQuarterlyReviewNotFound) ||
		errors.Is(err, repository.ErrUserNotFound)
}
