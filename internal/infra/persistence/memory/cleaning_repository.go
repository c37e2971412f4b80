package memory

import (
	"cmp"
	"context"
	"slices"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
)

type cleaningRepository struct {
	db executor
}

// NewCleaningRepository returns a CleaningRepository backed by the store.
func NewCleaningRepository(store *Store) repository.CleaningRepository {
	return &cleaningRepository{db: store}
}

func (repo *cleaningRepository) Create(_ context.Context, cleaning *entity.Cleaning) error {
	return repo.db.write(func(st *state) error {
		if _, ok := st.users[cleaning.OwnerID]; !ok {
			return repository.ErrUserNotFound
		}
		if !cleaning.CleaningType.IsValid() {
			return domainerrors.ErrInvalidCleaningType
		}

		now := repo.db.now()
		st.nextCleaningID++
		cleaning.ID = st.nextCleaningID
		cleaning.CreatedAt = now
		cleaning.UpdatedAt = now
		st.cleanings[cleaning.ID] = *cleaning

		return nil
	})
}

func (repo *cleaningRepository) FindByID(_ context.Context, id int64) (*entity.Cleaning, error) {
	var found *entity.Cleaning
	err := repo.db.read(func(st *state) error {
		cleaning, ok := st.cleanings[id]
		if !ok {
			return repository.ErrCleaningNotFound
		}
		found = &cleaning
		return nil
	})

	return found, err
}

func (repo *cleaningRepository) ListByOwner(_ context.Context, ownerID int64) ([]*entity.Cleaning, error) {
	cleanings := make([]*entity.Cleaning, 0)
	err := repo.db.read(func(st *state) error {
		for _, cleaning := range st.cleanings {
			if cleaning.OwnerID == ownerID {
				cleanings = append(cleanings, &cleaning)
			}
		}
		return nil
	})
	slices.SortFunc(cleanings, func(a, b *entity.Cleaning) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return cleanings, err
}

func (repo *cleaningRepository) Update(_ context.Context, cleaning *entity.Cleaning) error {
	return repo.db.write(func(st *state) error {
		existing, ok := st.cleanings[cleaning.ID]
		if !ok {
			return repository.ErrCleaningNotFound
		}
		if !cleaning.CleaningType.IsValid() {
			return domainerrors.ErrInvalidCleaningType
		}

		existing.Name = cleaning.Name
		existing.Description = cleaning.Description
		existing.Price = cleaning.Price
		existing.CleaningType = cleaning.CleaningType
		existing.UpdatedAt = repo.db.now()
		st.cleanings[cleaning.ID] = existing

		cleaning.OwnerID = existing.OwnerID
		cleaning.UpdatedAt = existing.UpdatedAt

		return nil
	})
}

// Delete removes the cleaning and its offers.
func (repo *cleaningRepository) Delete(_ context.Context, id int64) error {
	return repo.db.write(func(st *state) error {
		if _, ok := st.cleanings[id]; !ok {
			return repository.ErrCleaningNotFound
		}
		delete(st.cleanings, id)
		for key := range st.offers {
			if key.cleaningID == id {
				delete(st.offers, key)
			}
		}
		return nil
	})
}
