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

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	cleaningRepo repository.CleaningRepository
	offerRepo    repository.OfferRepository
	logger       *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	CleaningRepo repository.CleaningRepository
	OfferRepo    repository.OfferRepository
	Logger       *slog.Logger
}

// NewOfferService creates a new offer service
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		cleaningRepo: params.CleaningRepo,
		offerRepo:    params.OfferRepo,
		logger:       params.Logger,
	}
}

func (srv *offerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a pending offer by the caller. Owners cannot bid on their own cleanings
// and a second offer for the same cleaning is rejected by the store.
func (srv *offerService) Create(ctx context.Context, user *entity.User, cleaningID int64) (*entity.Offer, error) {
	cleaning, err := findCleaning(ctx, srv.cleaningRepo, cleaningID)
	if err != nil {
		return nil, err
	}
	if err := guard.CheckNotOwnerForOfferCreation(cleaning, user); err != nil {
		return nil, err
	}

	offer := &entity.Offer{
		CleaningID: cleaning.ID,
		UserID:     user.ID,
		Username:   user.Username,
		Status:     entity.OfferStatusPending,
	}
	if err := srv.offerRepo.Create(ctx, offer); err != nil {
		srv.log(ctx).Debug("Offer creation rejected", slog.Int64("cleaningID", cleaningID), slog.Any("error", err))

		return nil, errors.Wrap(translateRepoError(err), "failed to create offer")
	}

	srv.log(ctx).Info("Offer created", slog.Int64("cleaningID", cleaningID), slog.Int64("userID", user.ID))

	return offer, nil
}

// List returns every offer for a cleaning. Only the owner may list them.
func (srv *offerService) List(ctx context.Context, user *entity.User, cleaningID int64) ([]*entity.Offer, error) {
	cleaning, err := findCleaning(ctx, srv.cleaningRepo, cleaningID)
	if err != nil {
		return nil, err
	}
	if err := guard.CheckResourceOwner(user, cleaning); err != nil {
		return nil, err
	}

	offers, err := srv.offerRepo.ListByCleaning(ctx, cleaningID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	return offers, nil
}

// Get returns the offer the named user made. The cleaning owner and that user may read it.
func (srv *offerService) Get(ctx context.Context, user *entity.User, cleaningID int64, username string) (*entity.Offer, error) {
	cleaning, err := findCleaning(ctx, srv.cleaningRepo, cleaningID)
	if err != nil {
		return nil, err
	}

	offer, err := findOfferFrom(ctx, srv.userRepo, srv.offerRepo, cleaningID, username)
	if err != nil {
		return nil, err
	}
	if err := guard.CheckOfferViewer(user, cleaning, offer); err != nil {
		return nil, err
	}

	return offer, nil
}

// Accept marks the named user's pending offer as accepted and rejects every other pending offer,
// all in one transaction. Only the cleaning owner may accept.
func (srv *offerService) Accept(ctx context.Context, user *entity.User, cleaningID int64, username string) (*entity.Offer, error) {
	var accepted *entity.Offer
	var rejected int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		cleaning, err := findCleaning(ctx, repoFactory.CleaningRepo(), cleaningID)
		if err != nil {
			return err
		}
		if err := guard.CheckResourceOwner(user, cleaning); err != nil {
			return err
		}

		offer, err := findOfferFrom(ctx, repoFactory.UserRepo(), offerRepo, cleaningID, username)
		if err != nil {
			return err
		}
		if !offer.Status.CanTransition(entity.OfferStatusAccepted) {
			return domainerrors.ErrOfferNotPending
		}

		if err := offerRepo.UpdateStatus(ctx, cleaningID, offer.UserID, entity.OfferStatusAccepted); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to accept offer")
		}
		rejected, err = offerRepo.RejectPendingExcept(ctx, cleaningID, offer.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to reject competing offers")
		}

		accepted, err = offerRepo.Find(ctx, cleaningID, offer.UserID)
		if err != nil {
			return errors.Wrap(translateRepoError(err), "failed to reload accepted offer")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to execute offer acceptance transaction")
	}

	srv.log(ctx).Info("Offer accepted",
		slog.Int64("cleaningID", cleaningID),
		slog.Int64("userID", accepted.UserID),
		slog.Int64("rejected", rejected),
	)

	return accepted, nil
}

// Cancel moves the caller's own pending offer to cancelled.
func (srv *offerService) Cancel(ctx context.Context, user *entity.User, cleaningID int64) (*entity.Offer, error) {
	var cancelled *entity.Offer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		offer, err := findOwnPendingOffer(ctx, repoFactory, user, cleaningID)
		if err != nil {
			return err
		}

		if err := offerRepo.UpdateStatus(ctx, cleaningID, offer.UserID, entity.OfferStatusCancelled); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to cancel offer")
		}

		cancelled, err = offerRepo.Find(ctx, cleaningID, offer.UserID)
		if err != nil {
			return errors.Wrap(translateRepoError(err), "failed to reload cancelled offer")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute offer cancellation transaction")
	}

	srv.log(ctx).Info("Offer cancelled", slog.Int64("cleaningID", cleaningID), slog.Int64("userID", user.ID))

	return cancelled, nil
}

// Rescind removes the caller's own pending offer.
func (srv *offerService) Rescind(ctx context.Context, user *entity.User, cleaningID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offer, err := findOwnPendingOffer(ctx, repoFactory, user, cleaningID)
		if err != nil {
			return err
		}

		if err := repoFactory.OfferRepo().Delete(ctx, cleaningID, offer.UserID); err != nil {
			return errors.Wrap(translateRepoError(err), "failed to rescind offer")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute offer rescind transaction")
	}

	srv.log(ctx).Info("Offer rescinded", slog.Int64("cleaningID", cleaningID), slog.Int64("userID", user.ID))

	return nil
}

// findOfferFrom resolves username to a user and loads that user's offer for the cleaning.
func findOfferFrom(ctx context.Context, userRepo repository.UserRepository, offerRepo repository.OfferRepository, cleaningID int64, username string) (*entity.Offer, error) {
	offerer, err := userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to load offering user")
	}

	offer, err := offerRepo.Find(ctx, cleaningID, offerer.ID)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to load offer")
	}

	return offer, nil
}

// findOwnPendingOffer loads the offer the user made for an existing cleaning and requires it to be pending.
func findOwnPendingOffer(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User, cleaningID int64) (*entity.Offer, error) {
	if _, err := findCleaning(ctx, repoFactory.CleaningRepo(), cleaningID); err != nil {
		return nil, err
	}

	offer, err := repoFactory.OfferRepo().Find(ctx, cleaningID, user.ID)
	if err != nil {
		return nil, errors.Wrap(translateRepoError(err), "failed to load own offer")
	}
	if err := guard.CheckOfferMaker(user, offer); err != nil {
		return nil, err
	}
	if !offer.Status.CanTransition(entity.OfferStatusCancelled) {
		return nil, domainerrors.ErrOfferNotPending
	}

	return offer, nil
}
