package usecase

import (
	"context"

	"phresh/internal/domain/entity"
)

// OfferUsecase drives the offer state machine.
//
//	pending -> accepted   (cleaning owner; competing pending offers become rejected)
//	pending -> cancelled  (offering user)
//	pending -> rescinded  (offering user; the offer is removed)
type OfferUsecase interface {
	Create(ctx context.Context, user *entity.User, cleaningID int64) (*entity.Offer, error)
	List(ctx context.Context, user *entity.User, cleaningID int64) ([]*entity.Offer, error)
	Get(ctx context.Context, user *entity.User, cleaningID int64, username string) (*entity.Offer, error)
	Accept(ctx context.Context, user *entity.User, cleaningID int64, username string) (*entity.Offer, error)
	Cancel(ctx context.Context, user *entity.User, cleaningID int64) (*entity.Offer, error)
	Rescind(ctx context.Context, user *entity.User, cleaningID int64) error
}
