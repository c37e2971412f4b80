package repository

import (
	"context"
	"errors"

	"phresh/internal/domain/entity"
)

// ErrCleaningNotFound is returned when a cleaning job is not found.
var ErrCleaningNotFound = errors.New("cleaning not found")

// CleaningRepository defines persistence operations for cleaning jobs.
type CleaningRepository interface {
	// Create persists a new cleaning and assigns its ID and timestamps.
	Create(ctx context.Context, cleaning *entity.Cleaning) error

	// FindByID retrieves a cleaning by ID.
	FindByID(ctx context.Context, id int64) (*entity.Cleaning, error)

	// ListByOwner retrieves all cleanings owned by a user, oldest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Cleaning, error)

	// Update modifies the mutable fields of a cleaning. The owner is never changed.
	Update(ctx context.Context, cleaning *entity.Cleaning) error

	// Delete removes a cleaning and, through the store's cascade, its offers.
	Delete(ctx context.Context, id int64) error
}
