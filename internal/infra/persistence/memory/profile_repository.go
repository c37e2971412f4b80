package memory

import (
	"context"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
)

type profileRepository struct {
	db executor
}

// NewProfileRepository returns a ProfileRepository backed by the store.
func NewProfileRepository(store *Store) repository.ProfileRepository {
	return &profileRepository{db: store}
}

func (repo *profileRepository) Create(_ context.Context, profile *entity.Profile) error {
	return repo.db.write(func(st *state) error {
		if _, ok := st.users[profile.UserID]; !ok {
			return repository.ErrUserNotFound
		}
		if _, ok := st.profiles[profile.UserID]; ok {
			return domainerrors.ErrConflict.WrapMessage("profile already exists")
		}

		now := repo.db.now()
		st.nextProfileID++
		profile.ID = st.nextProfileID
		profile.CreatedAt = now
		profile.UpdatedAt = now

		stored := *profile
		stored.Username, stored.Email = "", ""
		st.profiles[profile.UserID] = stored

		return nil
	})
}

func (repo *profileRepository) FindByUserID(_ context.Context, userID int64) (*entity.Profile, error) {
	var found *entity.Profile
	err := repo.db.read(func(st *state) error {
		user, ok := st.users[userID]
		if !ok {
			return repository.ErrProfileNotFound
		}
		found = joinProfile(st, user)
		if found == nil {
			return repository.ErrProfileNotFound
		}
		return nil
	})

	return found, err
}

func (repo *profileRepository) FindByUsername(_ context.Context, username string) (*entity.Profile, error) {
	var found *entity.Profile
	err := repo.db.read(func(st *state) error {
		user, ok := st.userByUsername(username)
		if !ok {
			return repository.ErrProfileNotFound
		}
		found = joinProfile(st, user)
		if found == nil {
			return repository.ErrProfileNotFound
		}
		return nil
	})

	return found, err
}

func (repo *profileRepository) Update(_ context.Context, profile *entity.Profile) error {
	return repo.db.write(func(st *state) error {
		existing, ok := st.profiles[profile.UserID]
		if !ok {
			return repository.ErrProfileNotFound
		}

		existing.FullName = profile.FullName
		existing.PhoneNumber = profile.PhoneNumber
		existing.Bio = profile.Bio
		existing.Image = profile.Image
		existing.UpdatedAt = repo.db.now()
		st.profiles[profile.UserID] = existing

		profile.UpdatedAt = existing.UpdatedAt

		return nil
	})
}

func joinProfile(st *state, user entity.User) *entity.Profile {
	profile, ok := st.profiles[user.ID]
	if !ok {
		return nil
	}
	profile.Username = user.Username
	profile.Email = user.Email

	return &profile
}
