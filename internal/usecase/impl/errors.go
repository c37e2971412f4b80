// Package impl contains the implementation of the application's business logic.
package impl

import (
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/guard"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
)

// translateRepoError turns persistence sentinels into the domain errors the delivery layer renders.
// Errors that are already domain errors pass through unchanged.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrUserNotFound
	case errors.Is(err, repository.ErrProfileNotFound):
		return domainerrors.ErrProfileNotFound
	case errors.Is(err, repository.ErrCleaningNotFound):
		return domainerrors.ErrCleaningNotFound
	case errors.Is(err, repository.ErrOfferNotFound):
		return domainerrors.ErrOfferNotFound
	case errors.Is(err, repository.ErrEmailExists):
		return domainerrors.ErrEmailTaken
	case errors.Is(err, repository.ErrUsernameExists):
		return domainerrors.ErrUsernameTaken
	default:
		return guard.TranslateOfferUniqueness(err)
	}
}
