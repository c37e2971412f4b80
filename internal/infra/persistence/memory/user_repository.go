package memory

import (
	"context"

	"phresh/internal/domain/entity"
	"phresh/internal/domain/repository"
)

type userRepository struct {
	db executor
}

// NewUserRepository returns a UserRepository backed by the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{db: store}
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return repo.findOne(func(user entity.User) bool { return user.ID == id })
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return repo.findOne(func(user entity.User) bool { return user.Username == username })
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return repo.findOne(func(user entity.User) bool { return user.Email == email })
}

func (repo *userRepository) findOne(match func(entity.User) bool) (*entity.User, error) {
	var found *entity.User
	err := repo.db.read(func(st *state) error {
		for _, user := range st.users {
			if !match(user) {
				continue
			}
			found = &user
			if profile, ok := st.profiles[user.ID]; ok {
				profile.Username = user.Username
				profile.Email = user.Email
				found.Profile = &profile
			}
			return nil
		}
		return repository.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.db.write(func(st *state) error {
		if err := checkUserUnique(st, user, 0); err != nil {
			return err
		}

		now := repo.db.now()
		st.nextUserID++
		user.ID = st.nextUserID
		user.CreatedAt = now
		user.UpdatedAt = now

		stored := *user
		stored.Profile = nil
		st.users[stored.ID] = stored

		return nil
	})
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	return repo.db.write(func(st *state) error {
		existing, ok := st.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if err := checkUserUnique(st, user, user.ID); err != nil {
			return err
		}

		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = repo.db.now()

		stored := *user
		stored.Profile = nil
		st.users[stored.ID] = stored

		return nil
	})
}

// checkUserUnique mirrors the users_email_key and users_username_key constraints.
func checkUserUnique(st *state, user *entity.User, selfID int64) error {
	for id, other := range st.users {
		if id == selfID {
			continue
		}
		if other.Email == user.Email {
			return repository.ErrEmailExists
		}
		if other.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	return nil
}
