package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/usecase"
)

type offerScenario struct {
	*scenario
	owner    *entity.User
	cleaner  *entity.User
	rival    *entity.User
	cleaning *entity.Cleaning
}

func newOfferScenario(t *testing.T) *offerScenario {
	s := newScenario(t)
	owner := s.register(t, "owner@b.io", "owner", "password1").User
	cleaner := s.register(t, "cleaner@b.io", "cleaner", "password1").User
	rival := s.register(t, "rival@b.io", "rival", "password1").User

	cleaning, err := s.cleanings.Create(context.Background(), owner, &usecase.CreateCleaningInput{Name: "My House", Price: 29.99})
	require.NoError(t, err)

	return &offerScenario{scenario: s, owner: owner, cleaner: cleaner, rival: rival, cleaning: cleaning}
}

func TestOfferService_Create(t *testing.T) {
	s := newOfferScenario(t)
	ctx := context.Background()

	offer, err := s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusPending, offer.Status)
	assert.Equal(t, "cleaner", offer.Username)

	_, err = s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateOffer)

	_, err = s.offers.Create(ctx, s.owner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrSelfOfferNotAllowed)

	_, err = s.offers.Create(ctx, s.cleaner, s.cleaning.ID+100)
	assert.ErrorIs(t, err, domainerrors.ErrCleaningNotFound)
}

func TestOfferService_ListAndGet(t *testing.T) {
	s := newOfferScenario(t)
	ctx := context.Background()

	_, err := s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	_, err = s.offers.Create(ctx, s.rival, s.cleaning.ID)
	require.NoError(t, err)

	offers, err := s.offers.List(ctx, s.owner, s.cleaning.ID)
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	_, err = s.offers.List(ctx, s.cleaner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	got, err := s.offers.Get(ctx, s.owner, s.cleaning.ID, "cleaner")
	require.NoError(t, err)
	assert.Equal(t, s.cleaner.ID, got.UserID)

	_, err = s.offers.Get(ctx, s.cleaner, s.cleaning.ID, "cleaner")
	assert.NoError(t, err)

	_, err = s.offers.Get(ctx, s.rival, s.cleaning.ID, "cleaner")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = s.offers.Get(ctx, s.owner, s.cleaning.ID, "owner")
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)
}

func TestOfferService_AcceptRejectsCompetitors(t *testing.T) {
	s := newOfferScenario(t)
	ctx := context.Background()

	_, err := s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	_, err = s.offers.Create(ctx, s.rival, s.cleaning.ID)
	require.NoError(t, err)

	_, err = s.offers.Accept(ctx, s.cleaner, s.cleaning.ID, "cleaner")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	accepted, err := s.offers.Accept(ctx, s.owner, s.cleaning.ID, "cleaner")
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusAccepted, accepted.Status)

	rival, err := s.offers.Get(ctx, s.owner, s.cleaning.ID, "rival")
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusRejected, rival.Status)

	_, err = s.offers.Accept(ctx, s.owner, s.cleaning.ID, "rival")
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotPending)

	_, err = s.offers.Cancel(ctx, s.cleaner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotPending)
}

func TestOfferService_CancelAndRescind(t *testing.T) {
	s := newOfferScenario(t)
	ctx := context.Background()

	_, err := s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	_, err = s.offers.Create(ctx, s.rival, s.cleaning.ID)
	require.NoError(t, err)

	cancelled, err := s.offers.Cancel(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusCancelled, cancelled.Status)

	err = s.offers.Rescind(ctx, s.cleaner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotPending)

	require.NoError(t, s.offers.Rescind(ctx, s.rival, s.cleaning.ID))
	_, err = s.offers.Get(ctx, s.owner, s.cleaning.ID, "rival")
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)

	_, err = s.offers.Cancel(ctx, s.owner, s.cleaning.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)
}

func TestOfferService_DeleteCleaningRemovesOffers(t *testing.T) {
	s := newOfferScenario(t)
	ctx := context.Background()

	_, err := s.offers.Create(ctx, s.cleaner, s.cleaning.ID)
	require.NoError(t, err)
	require.NoError(t, s.cleanings.Delete(ctx, s.owner, s.cleaning.ID))

	_, err = s.offers.Get(ctx, s.cleaner, s.cleaning.ID, "cleaner")
	assert.ErrorIs(t, err, domainerrors.ErrCleaningNotFound)
}
