package usecase

import (
	"context"

	"phresh/internal/domain/entity"
)

// ProfileUsecase defines profile reads and self-service updates.
type ProfileUsecase interface {
	GetByUsername(ctx context.Context, username string) (*entity.Profile, error)
	UpdateOwn(ctx context.Context, user *entity.User, patch entity.ProfilePatch) (*entity.Profile, error)
}
