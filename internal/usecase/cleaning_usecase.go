package usecase

import (
	"context"

	"phresh/internal/domain/entity"
)

// CreateCleaningInput defines a new cleaning job. An empty type means spot_clean.
type CreateCleaningInput struct {
	Name         string
	Description  string
	Price        float64
	CleaningType entity.CleaningType
}

// CleaningUsecase defines operations on cleaning jobs.
// Update and Delete are allowed for the owner only.
type CleaningUsecase interface {
	Create(ctx context.Context, owner *entity.User, input *CreateCleaningInput) (*entity.Cleaning, error)
	Get(ctx context.Context, id int64) (*entity.Cleaning, error)
	ListMine(ctx context.Context, user *entity.User) ([]*entity.Cleaning, error)
	Update(ctx context.Context, user *entity.User, id int64, patch entity.CleaningPatch) (*entity.Cleaning, error)
	Delete(ctx context.Context, user *entity.User, id int64) error
}
