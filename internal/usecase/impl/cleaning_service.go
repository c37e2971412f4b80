package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "phresh/internal/delivery/context"
	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/guard"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
	"phresh/internal/usecase"
)

// cleaningService implements the CleaningUsecase interface.
type cleaningService struct {
	txManager    repository.TransactionManager
	cleaningRepo repository.CleaningRepository
	logger       *slog.Logger
}

// CleaningServiceParams holds dependencies for CleaningService, injected by Fx.
type CleaningServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CleaningRepo repository.CleaningRepository
	Logger       *slog.Logger
}

// NewCleaningService creates a new cleaning service
func NewCleaningService(params CleaningServiceParams) usecase.CleaningUsecase {
	return &cleaningService{
		txManager:    params.TxManager,
		cleaningRepo: params.CleaningRepo,
		logger:       params.Logger,
	}
}

func (srv *cleaningService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a new cleaning job owned by the caller.
func (srv *cleaningService) Create(ctx context.Context, owner *entity.User, input *usecase.CreateCleaningInput) (*entity.Cleaning, error) {
	cleaningType := input.CleaningType
	if cleaningType == "" {
		cleaningType = entity.CleaningTypeSpotClean
	}
	if !cleaningType.IsValid() {
		return nil, domainerrors.ErrInvalidCleaningType
	}

	cleaning := &entity.Cleaning{
		OwnerID:      owner.ID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		CleaningType: cleaningType,
	}
	if err := srv.cleaningRepo.Create(ctx, cleaning); err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to create cleaning")
	}

	srv.log(ctx).Info("Cleaning created", slog.Int64("cleaningID", cleaning.ID), slog.Int64("ownerID", owner.ID))

	return cleaning, nil
}

// Get returns a cleaning by id. Any authenticated user may read it.
func (srv *cleaningService) Get(ctx context.Context, id int64) (*entity.Cleaning, error) {
	cleaning, err := srv.cleaningRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to get cleaning")
	}

	return cleaning, nil
}

// ListMine returns the cleanings the caller owns.
func (srv *cleaningService) ListMine(ctx context.Context, user *entity.User) ([]*entity.Cleaning, error) {
	cleanings, err := srv.cleaningRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cleanings")
	}

	return cleanings, nil
}

// Update applies the patch when the caller owns the cleaning.
func (srv *cleaningService) Update(ctx context.Context, user *entity.User, id int64, patch entity.CleaningPatch) (*entity.Cleaning, error) {
	if patch.CleaningType != nil && !patch.CleaningType.IsValid() {
		return nil, domainerrors.ErrInvalidCleaningType
	}

	var updated *entity.Cleaning
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cleaningRepo := repoFactory.CleaningRepo()

		cleaning, err := findCleaning(ctx, cleaningRepo, id)
		if err != nil {
			return err
		}
		if err := guard.CheckResourceOwner(user, cleaning); err != nil {
			return err
		}

		patch.Apply(cleaning)
		if err := cleaningRepo.Update(ctx, cleaning); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to update cleaning")
		}
		updated = cleaning

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Cleaning update rejected", slog.Int64("cleaningID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute cleaning update transaction")
	}

	return updated, nil
}

// Delete removes a cleaning and its offers when the caller owns it.
func (srv *cleaningService) Delete(ctx context.Context, user *entity.User, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cleaningRepo := repoFactory.CleaningRepo()

		cleaning, err := findCleaning(ctx, cleaningRepo, id)
		if err != nil {
			return err
		}
		if err := guard.CheckResourceOwner(user, cleaning); err != nil {
			return err
		}

		if err := cleaningRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to delete cleaning")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute cleaning delete transaction")
	}

	srv.log(ctx).Info("Cleaning deleted", slog.Int64("cleaningID", id), slog.Int64("ownerID", user.ID))

	return nil
}

// findCleaning loads a cleaning, reporting a missing one as the domain not-found error.
func findCleaning(ctx context.Context, repo repository.CleaningRepository, id int64) (*entity.Cleaning, error) {
	cleaning, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to load cleaning")
	}

	return cleaning, nil
}
