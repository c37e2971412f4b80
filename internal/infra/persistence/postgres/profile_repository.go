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

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("profile already exists")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *profileRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Profile, error) {
	return repo.findOne(repo.withUser(ctx).Where("profiles.user_id = ?", userID))
}

func (repo *profileRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	return repo.findOne(repo.withUser(ctx).Where("users.username = ?", username))
}

func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)
	profileM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Select("FullName", "PhoneNumber", "Bio", "Image", "UpdatedAt").
		Updates(profileM)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// withUser joins the owning user so reads carry username and email.
func (repo *profileRepository) withUser(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Select("profiles.*, users.username, users.email").
		Joins("JOIN users ON users.id = profiles.user_id")
}

func (repo *profileRepository) findOne(query *gorm.DB) (*entity.Profile, error) {
	var row model.ProfileWithUserModel
	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "failed to find profile")
	}

	return toProfileDomain(&row.ProfileModel, row.Username, row.Email), nil
}

func toProfileDomain(data *model.ProfileModel, username, email string) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:          data.ID,
		UserID:      data.UserID,
		FullName:    data.FullName,
		PhoneNumber: data.PhoneNumber,
		Bio:         data.Bio,
		Image:       data.Image,
		Username:    username,
		Email:       email,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	return &model.ProfileModel{
		ID:          data.ID,
		UserID:      data.UserID,
		FullName:    data.FullName,
		PhoneNumber: data.PhoneNumber,
		Bio:         data.Bio,
		Image:       data.Image,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
