package repository

import (
	"context"
	"errors"

	"phresh/internal/domain/entity"
)

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	// Create persists the profile of a newly registered user.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByUserID retrieves the profile owned by the given user.
	FindByUserID(ctx context.Context, userID int64) (*entity.Profile, error)

	// FindByUsername retrieves a profile joined with its owner's username and email.
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)

	// Update modifies an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error
}
