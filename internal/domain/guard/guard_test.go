package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
)

func TestCheckResourceOwner(t *testing.T) {
	owner := &entity.User{ID: 1, Username: "owner"}
	other := &entity.User{ID: 2, Username: "other"}
	cleaning := &entity.Cleaning{ID: 10, OwnerID: owner.ID}

	tests := []struct {
		name     string
		user     *entity.User
		cleaning *entity.Cleaning
		want     error
	}{
		{name: "owner is allowed", user: owner, cleaning: cleaning},
		{name: "non-owner is forbidden", user: other, cleaning: cleaning, want: domainerrors.ErrForbidden},
		{name: "missing cleaning is not found", user: owner, want: domainerrors.ErrCleaningNotFound},
		{name: "anonymous is forbidden", cleaning: cleaning, want: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResourceOwner(tt.user, tt.cleaning)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckNotOwnerForOfferCreation(t *testing.T) {
	owner := &entity.User{ID: 1}
	bidder := &entity.User{ID: 2}
	cleaning := &entity.Cleaning{ID: 10, OwnerID: owner.ID}

	assert.NoError(t, CheckNotOwnerForOfferCreation(cleaning, bidder))
	assert.ErrorIs(t, CheckNotOwnerForOfferCreation(cleaning, owner), domainerrors.ErrSelfOfferNotAllowed)
	assert.ErrorIs(t, CheckNotOwnerForOfferCreation(nil, bidder), domainerrors.ErrCleaningNotFound)
}

func TestCheckOfferMaker(t *testing.T) {
	bidder := &entity.User{ID: 2}
	offer := &entity.Offer{CleaningID: 10, UserID: bidder.ID, Status: entity.OfferStatusPending}

	assert.NoError(t, CheckOfferMaker(bidder, offer))
	assert.ErrorIs(t, CheckOfferMaker(&entity.User{ID: 3}, offer), domainerrors.ErrForbidden)
	assert.ErrorIs(t, CheckOfferMaker(bidder, nil), domainerrors.ErrOfferNotFound)
}

func TestCheckOfferViewer(t *testing.T) {
	owner := &entity.User{ID: 1}
	bidder := &entity.User{ID: 2}
	stranger := &entity.User{ID: 3}
	cleaning := &entity.Cleaning{ID: 10, OwnerID: owner.ID}
	offer := &entity.Offer{CleaningID: cleaning.ID, UserID: bidder.ID}

	assert.NoError(t, CheckOfferViewer(owner, cleaning, offer))
	assert.NoError(t, CheckOfferViewer(bidder, cleaning, offer))
	assert.ErrorIs(t, CheckOfferViewer(stranger, cleaning, offer), domainerrors.ErrForbidden)
	assert.ErrorIs(t, CheckOfferViewer(owner, nil, offer), domainerrors.ErrCleaningNotFound)
	assert.ErrorIs(t, CheckOfferViewer(owner, cleaning, nil), domainerrors.ErrOfferNotFound)
}

func TestTranslateOfferUniqueness(t *testing.T) {
	other := errors.New("connection reset")

	assert.NoError(t, TranslateOfferUniqueness(nil))
	assert.ErrorIs(t, TranslateOfferUniqueness(errors.Wrap(repository.ErrOfferExists, "insert")), domainerrors.ErrDuplicateOffer)
	assert.ErrorIs(t, TranslateOfferUniqueness(repository.ErrAcceptedOfferExists), domainerrors.ErrOfferAlreadyAccepted)
	assert.Equal(t, other, TranslateOfferUniqueness(other))
}
