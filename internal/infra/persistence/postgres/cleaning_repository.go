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

type cleaningRepository struct {
	db *gorm.DB
}

// NewCleaningRepository is the constructor for cleaningRepository.
func NewCleaningRepository(db *gorm.DB) repository.CleaningRepository {
	return &cleaningRepository{db: db}
}

func (repo *cleaningRepository) Create(ctx context.Context, cleaning *entity.Cleaning) error {
	cleaningM := fromCleaningDomain(cleaning)

	if err := repo.db.WithContext(ctx).Create(cleaningM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidCleaningType
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create cleaning")
	}

	cleaning.ID = cleaningM.ID
	cleaning.CreatedAt = cleaningM.CreatedAt
	cleaning.UpdatedAt = cleaningM.UpdatedAt

	return nil
}

func (repo *cleaningRepository) FindByID(ctx context.Context, id int64) (*entity.Cleaning, error) {
	var cleaningM model.CleaningModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&cleaningM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCleaningNotFound
		}
		return nil, errors.Wrap(err, "failed to find cleaning by id")
	}

	return toCleaningDomain(&cleaningM), nil
}

func (repo *cleaningRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Cleaning, error) {
	var cleaningMs []model.CleaningModel
	if err := repo.db.WithContext(ctx).Where("owner = ?", ownerID).Order("created_at, id").Find(&cleaningMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cleanings")
	}

	cleanings := make([]*entity.Cleaning, 0, len(cleaningMs))
	for i := range cleaningMs {
		cleanings = append(cleanings, toCleaningDomain(&cleaningMs[i]))
	}

	return cleanings, nil
}

// Update writes the mutable columns. The owner column is never part of the update.
func (repo *cleaningRepository) Update(ctx context.Context, cleaning *entity.Cleaning) error {
	cleaningM := fromCleaningDomain(cleaning)
	cleaningM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.CleaningModel{ID: cleaning.ID}).
		Select("Name", "Description", "Price", "CleaningType", "UpdatedAt").
		Updates(cleaningM)
	if err := result.Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidCleaningType
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to update cleaning")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCleaningNotFound
	}

	cleaning.UpdatedAt = cleaningM.UpdatedAt

	return nil
}

func (repo *cleaningRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.CleaningModel{}, id)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cleaning")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCleaningNotFound
	}

	return nil
}

func toCleaningDomain(data *model.CleaningModel) *entity.Cleaning {
	return &entity.Cleaning{
		ID:           data.ID,
		OwnerID:      data.Owner,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		CleaningType: entity.CleaningType(data.CleaningType),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCleaningDomain(data *entity.Cleaning) *model.CleaningModel {
	return &model.CleaningModel{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		CleaningType: data.CleaningType.String(),
		Owner:        data.OwnerID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
