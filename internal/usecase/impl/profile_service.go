package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetByUsername returns the public profile of a user.
func (srv *profileService) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to get profile")
	}

	return profile, nil
}

// UpdateOwn applies the patch to the caller's own profile.
func (srv *profileService) UpdateOwn(ctx context.Context, user *entity.User, patch entity.ProfilePatch) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to load own profile")
	}

	patch.Apply(profile)
	if err := srv.profileRepo.Update(ctx, profile); err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Int64("userID", user.ID))

	return profile, nil
}
