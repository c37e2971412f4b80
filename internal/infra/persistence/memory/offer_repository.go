package memory

import (
	"cmp"
	"context"
	"slices"

	"phresh/internal/domain/entity"
	"phresh/internal/domain/repository"
)

type offerRepository struct {
	db executor
}

// NewOfferRepository returns an OfferRepository backed by the store.
func NewOfferRepository(store *Store) repository.OfferRepository {
	return &offerRepository{db: store}
}

func (repo *offerRepository) Create(_ context.Context, offer *entity.Offer) error {
	return repo.db.write(func(st *state) error {
		if _, ok := st.cleanings[offer.CleaningID]; !ok {
			return repository.ErrCleaningNotFound
		}
		if _, ok := st.users[offer.UserID]; !ok {
			return repository.ErrUserNotFound
		}

		key := offerKey{cleaningID: offer.CleaningID, userID: offer.UserID}
		if _, ok := st.offers[key]; ok {
			return repository.ErrOfferExists
		}
		if offer.Status == "" {
			offer.Status = entity.OfferStatusPending
		}
		if offer.Status == entity.OfferStatusAccepted && hasAcceptedOffer(st, offer.CleaningID, offer.UserID) {
			return repository.ErrAcceptedOfferExists
		}

		now := repo.db.now()
		offer.CreatedAt = now
		offer.UpdatedAt = now

		stored := *offer
		stored.Username = ""
		st.offers[key] = stored

		return nil
	})
}

func (repo *offerRepository) Find(_ context.Context, cleaningID, userID int64) (*entity.Offer, error) {
	var found *entity.Offer
	err := repo.db.read(func(st *state) error {
		offer, ok := st.offers[offerKey{cleaningID: cleaningID, userID: userID}]
		if !ok {
			return repository.ErrOfferNotFound
		}
		found = joinOffer(st, offer)
		return nil
	})

	return found, err
}

func (repo *offerRepository) ListByCleaning(_ context.Context, cleaningID int64) ([]*entity.Offer, error) {
	offers := make([]*entity.Offer, 0)
	err := repo.db.read(func(st *state) error {
		for key, offer := range st.offers {
			if key.cleaningID == cleaningID {
				offers = append(offers, joinOffer(st, offer))
			}
		}
		return nil
	})
	slices.SortFunc(offers, func(a, b *entity.Offer) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.UserID, b.UserID))
	})

	return offers, err
}

func (repo *offerRepository) UpdateStatus(_ context.Context, cleaningID, userID int64, status entity.OfferStatus) error {
	return repo.db.write(func(st *state) error {
		key := offerKey{cleaningID: cleaningID, userID: userID}
		offer, ok := st.offers[key]
		if !ok {
			return repository.ErrOfferNotFound
		}
		// Mirrors uq_offers_one_accepted_per_cleaning.
		if status == entity.OfferStatusAccepted && hasAcceptedOffer(st, cleaningID, userID) {
			return repository.ErrAcceptedOfferExists
		}

		offer.Status = status
		offer.UpdatedAt = repo.db.now()
		st.offers[key] = offer

		return nil
	})
}

func (repo *offerRepository) RejectPendingExcept(_ context.Context, cleaningID, userID int64) (int64, error) {
	var rejected int64
	err := repo.db.write(func(st *state) error {
		now := repo.db.now()
		for key, offer := range st.offers {
			if key.cleaningID != cleaningID || key.userID == userID || offer.Status != entity.OfferStatusPending {
				continue
			}
			offer.Status = entity.OfferStatusRejected
			offer.UpdatedAt = now
			st.offers[key] = offer
			rejected++
		}
		return nil
	})

	return rejected, err
}

func (repo *offerRepository) Delete(_ context.Context, cleaningID, userID int64) error {
	return repo.db.write(func(st *state) error {
		key := offerKey{cleaningID: cleaningID, userID: userID}
		if _, ok := st.offers[key]; !ok {
			return repository.ErrOfferNotFound
		}
		delete(st.offers, key)
		return nil
	})
}

func hasAcceptedOffer(st *state, cleaningID, exceptUserID int64) bool {
	for key, offer := range st.offers {
		if key.cleaningID == cleaningID && key.userID != exceptUserID && offer.Status == entity.OfferStatusAccepted {
			return true
		}
	}

	return false
}

func joinOffer(st *state, offer entity.Offer) *entity.Offer {
	if user, ok := st.users[offer.UserID]; ok {
		offer.Username = user.Username
	}

	return &offer
}
