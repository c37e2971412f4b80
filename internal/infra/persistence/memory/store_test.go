package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phresh/internal/domain/entity"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
	"phresh/internal/errors"
)

type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)

	return c.now
}

func newTestStore() *Store {
	clock := &tickingClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewStoreWithClock(clock.Now)
}

func createUser(t *testing.T, store *Store, username, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:   username,
		Email:      email,
		IsActive:   true,
		Credential: entity.Credential{Salt: "salt", Hash: "hash"},
	}
	require.NoError(t, NewUserRepository(store).Create(context.Background(), user))

	return user
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewUserRepository(store)

	first := createUser(t, store, "abc", "a@b.io")
	assert.Equal(t, int64(1), first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := repo.Create(ctx, &entity.User{Username: "other", Email: "a@b.io"})
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	err = repo.Create(ctx, &entity.User{Username: "abc", Email: "c@d.io"})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)

	second := createUser(t, store, "second", "s@b.io")
	second.Email = "a@b.io"
	assert.ErrorIs(t, repo.Update(ctx, second), repository.ErrEmailExists)

	first.Email = "new@b.io"
	require.NoError(t, repo.Update(ctx, first))
	found, err := repo.FindByEmail(ctx, "new@b.io")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByUsername(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.User{ID: 99}), repository.ErrUserNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewUserRepository(store)
	user := createUser(t, store, "abc", "a@b.io")

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.IsActive = false

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, again.IsActive)
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewProfileRepository(store)
	user := createUser(t, store, "abc", "a@b.io")

	assert.ErrorIs(t, repo.Create(ctx, &entity.Profile{UserID: 42}), repository.ErrUserNotFound)

	profile := &entity.Profile{UserID: user.ID}
	require.NoError(t, repo.Create(ctx, profile))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Profile{UserID: user.ID}), domainerrors.ErrConflict)

	profile.FullName = "Abc Def"
	require.NoError(t, repo.Update(ctx, profile))

	found, err := repo.FindByUsername(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Abc Def", found.FullName)
	assert.Equal(t, "a@b.io", found.Email)

	withUser, err := NewUserRepository(store).FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, withUser.Profile)
	assert.Equal(t, "Abc Def", withUser.Profile.FullName)

	_, err = repo.FindByUsername(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestCleaningRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewCleaningRepository(store)
	owner := createUser(t, store, "owner", "o@b.io")

	assert.ErrorIs(t, repo.Create(ctx, &entity.Cleaning{OwnerID: 99, CleaningType: entity.CleaningTypeDustUp}), repository.ErrUserNotFound)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Cleaning{OwnerID: owner.ID, CleaningType: "deep"}), domainerrors.ErrInvalidCleaningType)

	first := &entity.Cleaning{OwnerID: owner.ID, Name: "first", Price: 10.5, CleaningType: entity.CleaningTypeSpotClean}
	second := &entity.Cleaning{OwnerID: owner.ID, Name: "second", Price: 20, CleaningType: entity.CleaningTypeFullClean}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)

	first.Name = "renamed"
	first.OwnerID = 12345
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, owner.ID, first.OwnerID)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", found.Name)
	assert.Equal(t, owner.ID, found.OwnerID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrCleaningNotFound)
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrCleaningNotFound)
}

func TestOfferRepository_Constraints(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewOfferRepository(store)
	owner := createUser(t, store, "owner", "o@b.io")
	bidderA := createUser(t, store, "bidder_a", "a@b.io")
	bidderB := createUser(t, store, "bidder_b", "b@b.io")

	cleaning := &entity.Cleaning{OwnerID: owner.ID, Name: "job", Price: 5, CleaningType: entity.CleaningTypeDustUp}
	require.NoError(t, NewCleaningRepository(store).Create(ctx, cleaning))

	assert.ErrorIs(t, repo.Create(ctx, &entity.Offer{CleaningID: 99, UserID: bidderA.ID}), repository.ErrCleaningNotFound)

	offerA := &entity.Offer{CleaningID: cleaning.ID, UserID: bidderA.ID}
	require.NoError(t, repo.Create(ctx, offerA))
	assert.Equal(t, entity.OfferStatusPending, offerA.Status)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Offer{CleaningID: cleaning.ID, UserID: bidderA.ID}), repository.ErrOfferExists)
	require.NoError(t, repo.Create(ctx, &entity.Offer{CleaningID: cleaning.ID, UserID: bidderB.ID}))

	require.NoError(t, repo.UpdateStatus(ctx, cleaning.ID, bidderA.ID, entity.OfferStatusAccepted))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, cleaning.ID, bidderB.ID, entity.OfferStatusAccepted), repository.ErrAcceptedOfferExists)

	rejected, err := repo.RejectPendingExcept(ctx, cleaning.ID, bidderA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rejected)

	offers, err := repo.ListByCleaning(ctx, cleaning.ID)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "bidder_a", offers[0].Username)
	assert.Equal(t, entity.OfferStatusAccepted, offers[0].Status)
	assert.Equal(t, entity.OfferStatusRejected, offers[1].Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, cleaning.ID, 99, entity.OfferStatusCancelled), repository.ErrOfferNotFound)

	require.NoError(t, NewCleaningRepository(store).Delete(ctx, cleaning.ID))
	_, err = repo.Find(ctx, cleaning.ID, bidderA.ID)
	assert.ErrorIs(t, err, repository.ErrOfferNotFound)
}

func TestOfferRepository_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewOfferRepository(store)
	owner := createUser(t, store, "owner", "o@b.io")
	bidder := createUser(t, store, "bidder", "b@b.io")
	cleaning := &entity.Cleaning{OwnerID: owner.ID, Name: "job", Price: 5, CleaningType: entity.CleaningTypeDustUp}
	require.NoError(t, NewCleaningRepository(store).Create(ctx, cleaning))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &entity.Offer{CleaningID: cleaning.ID, UserID: bidder.ID})
		}()
	}
	wg.Wait()
	close(errs)

	var created, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrOfferExists):
			duplicates++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, duplicates)
}

func TestTransactionManager_RollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tm := NewTransactionManager(store)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{Username: "abc", Email: "a@b.io"}
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		if err := f.ProfileRepo().Create(ctx, &entity.Profile{UserID: user.ID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewUserRepository(store).FindByUsername(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	// IDs are rolled back with the rows.
	user := createUser(t, store, "abc", "a@b.io")
	assert.Equal(t, int64(1), user.ID)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tm := NewTransactionManager(store)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Create(ctx, &entity.User{Username: "abc", Email: "a@b.io"})
			panic("unexpected")
		})
	})

	_, err := NewUserRepository(store).FindByUsername(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tm := NewTransactionManager(store)

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(ctx, &entity.User{Username: "abc", Email: "a@b.io"})
	}))

	_, err := NewUserRepository(store).FindByUsername(ctx, "abc")
	assert.NoError(t, err)
}

func TestTransactionManager_RollbackKeepsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tm := NewTransactionManager(store)
	owner := createUser(t, store, "owner", "o@b.io")
	bidder := createUser(t, store, "bidder", "b@b.io")
	cleaning := &entity.Cleaning{OwnerID: owner.ID, Name: "job", Price: 5, CleaningType: entity.CleaningTypeDustUp}
	require.NoError(t, NewCleaningRepository(store).Create(ctx, cleaning))

	boom := errors.New("boom")
	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if _, err := f.OfferRepo().RejectPendingExcept(ctx, cleaning.ID, owner.ID); err != nil {
				return err
			}
			close(inTx)
			<-release
			return boom
		})
	}()
	<-inTx

	created := make(chan error, 1)
	go func() {
		created <- NewOfferRepository(store).Create(ctx, &entity.Offer{CleaningID: cleaning.ID, UserID: bidder.ID})
	}()

	// The outside write waits for the open transaction.
	assert.Never(t, func() bool { return len(created) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	close(release)
	assert.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-created)

	offer, err := NewOfferRepository(store).Find(ctx, cleaning.ID, bidder.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusPending, offer.Status)
}

func TestTransactionManager_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTransactionManager(newTestStore()).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransactionManager_ReadsDoNotWait(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tm := NewTransactionManager(store)
	createUser(t, store, "abc", "a@b.io")

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, err := NewUserRepository(store).FindByUsername(ctx, "abc")
		return err
	}))
}
