// Package guard holds the ownership rules applied before every mutating operation
// on cleanings and offers. Missing resources surface as not-found, existing resources
// the caller may not touch surface as forbidden.
package guard

import (
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
)

// CheckResourceOwner allows the action only when the user owns the cleaning.
func CheckResourceOwner(user *entity.User, cleaning *entity.Cleaning) error {
	if cleaning == nil {
		return domainerrors.ErrCleaningNotFound
	}
	if user == nil || !cleaning.OwnedBy(user.ID) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// CheckNotOwnerForOfferCreation denies offers made by the owner of the cleaning.
func CheckNotOwnerForOfferCreation(cleaning *entity.Cleaning, user *entity.User) error {
	if cleaning == nil {
		return domainerrors.ErrCleaningNotFound
	}
	if user != nil && cleaning.OwnedBy(user.ID) {
		return domainerrors.ErrSelfOfferNotAllowed
	}

	return nil
}

// CheckOfferMaker allows the action only when the user made the offer.
func CheckOfferMaker(user *entity.User, offer *entity.Offer) error {
	if offer == nil {
		return domainerrors.ErrOfferNotFound
	}
	if user == nil || offer.UserID != user.ID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// CheckOfferViewer allows the cleaning owner and the offering user to read an offer.
func CheckOfferViewer(user *entity.User, cleaning *entity.Cleaning, offer *entity.Offer) error {
	if cleaning == nil {
		return domainerrors.ErrCleaningNotFound
	}
	if offer == nil {
		return domainerrors.ErrOfferNotFound
	}
	if user == nil {
		return domainerrors.ErrForbidden
	}
	if cleaning.OwnedBy(user.ID) || offer.UserID == user.ID {
		return nil
	}

	return domainerrors.ErrForbidden
}

// TranslateOfferUniqueness maps storage-level uniqueness violations on offers to domain errors.
// Any other error is returned unchanged.
func TranslateOfferUniqueness(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOfferExists):
		return domainerrors.ErrDuplicateOffer
	case errors.Is(err, repository.ErrAcceptedOfferExists):
		return domainerrors.ErrOfferAlreadyAccepted
	default:
		return err
	}
}
