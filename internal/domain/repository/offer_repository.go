package repository

import (
	"context"
	"errors"

	"phresh/internal/domain/entity"
)

// Domain-specific errors for offer persistence.
var (
	// ErrOfferNotFound is returned when an offer is not found.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferExists is returned when the (cleaning_id, user_id) unique constraint is violated.
	ErrOfferExists = errors.New("offer already exists for this user and cleaning")
	// ErrAcceptedOfferExists is returned when a second offer for the same cleaning is marked accepted.
	ErrAcceptedOfferExists = errors.New("cleaning already has an accepted offer")
)

// OfferRepository defines persistence operations for offers.
type OfferRepository interface {
	// Create persists a new offer.
	Create(ctx context.Context, offer *entity.Offer) error

	// Find retrieves the offer a user made for a cleaning.
	Find(ctx context.Context, cleaningID, userID int64) (*entity.Offer, error)

	// ListByCleaning retrieves all offers for a cleaning, oldest first.
	ListByCleaning(ctx context.Context, cleaningID int64) ([]*entity.Offer, error)

	// UpdateStatus sets the status of a single offer.
	UpdateStatus(ctx context.Context, cleaningID, userID int64, status entity.OfferStatus) error

	// RejectPendingExcept marks every other pending offer for the cleaning as rejected.
	RejectPendingExcept(ctx context.Context, cleaningID, userID int64) (int64, error)

	// Delete removes an offer.
	Delete(ctx context.Context, cleaningID, userID int64) error
}
