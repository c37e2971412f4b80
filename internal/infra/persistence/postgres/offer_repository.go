package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
	"phresh/internal/infra/persistence/model"
)

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// Create inserts the offer. The primary key on (cleaning_id, user_id) rejects a second offer
// from the same user, so a concurrent duplicate can never slip in.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return uniqueViolation(err, map[string]error{
				constraintOffersPkey:             repository.ErrOfferExists,
				constraintOneAcceptedPerCleaning: repository.ErrAcceptedOfferExists,
			}, repository.ErrOfferExists)
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCleaningNotFound
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

func (repo *offerRepository) Find(ctx context.Context, cleaningID, userID int64) (*entity.Offer, error) {
	var row model.OfferWithUserModel
	err := repo.withUser(ctx).
		Where("offers.cleaning_id = ? AND offers.user_id = ?", cleaningID, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}
		return nil, errors.Wrap(err, "failed to find offer")
	}

	return toOfferDomain(&row), nil
}

func (repo *offerRepository) ListByCleaning(ctx context.Context, cleaningID int64) ([]*entity.Offer, error) {
	var rows []model.OfferWithUserModel
	err := repo.withUser(ctx).
		Where("offers.cleaning_id = ?", cleaningID).
		Order("offers.created_at, offers.user_id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(rows))
	for i := range rows {
		offers = append(offers, toOfferDomain(&rows[i]))
	}

	return offers, nil
}

// UpdateStatus sets the status of one offer. The partial unique index on accepted offers
// turns a concurrent second acceptance into ErrAcceptedOfferExists.
func (repo *offerRepository) UpdateStatus(ctx context.Context, cleaningID, userID int64, status entity.OfferStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("cleaning_id = ? AND user_id = ?", cleaningID, userID).
		Updates(map[string]any{"status": status.String(), "updated_at": time.Now()})
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return uniqueViolation(err, map[string]error{
				constraintOneAcceptedPerCleaning: repository.ErrAcceptedOfferExists,
			}, repository.ErrAcceptedOfferExists)
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update offer status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

func (repo *offerRepository) RejectPendingExcept(ctx context.Context, cleaningID, userID int64) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("cleaning_id = ? AND user_id <> ? AND status = ?", cleaningID, userID, entity.OfferStatusPending.String()).
		Updates(map[string]any{"status": entity.OfferStatusRejected.String(), "updated_at": time.Now()})
	if err := result.Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to reject competing offers")
	}

	return result.RowsAffected, nil
}

func (repo *offerRepository) Delete(ctx context.Context, cleaningID, userID int64) error {
	result := repo.db.WithContext(ctx).
		Where("cleaning_id = ? AND user_id = ?", cleaningID, userID).
		Delete(&model.OfferModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// withUser joins the offering user so reads carry the username.
func (repo *offerRepository) withUser(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Select("offers.*, users.username").
		Joins("JOIN users ON users.id = offers.user_id")
}

func toOfferDomain(data *model.OfferWithUserModel) *entity.Offer {
	return &entity.Offer{
		CleaningID: data.CleaningID,
		UserID:     data.UserID,
		Username:   data.Username,
		Status:     entity.OfferStatus(data.Status),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	status := data.Status
	if status == "" {
		status = entity.OfferStatusPending
	}

	return &model.OfferModel{
		CleaningID: data.CleaningID,
		UserID:     data.UserID,
		Status:     status.String(),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
