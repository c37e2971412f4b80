package memory

import (
	"context"
	"fmt"

	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager for the store.
// A failed or panicking callback restores the state captured when the transaction began.
// Writes from outside the transaction block until it finishes, so a rollback never discards them.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	db executor
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{db: f.db}
}

func (f *repositoryFactory) ProfileRepo() repository.ProfileRepository {
	return &profileRepository{db: f.db}
}

func (f *repositoryFactory) CleaningRepo() repository.CleaningRepository {
	return &cleaningRepository{db: f.db}
}

func (f *repositoryFactory) OfferRepo() repository.OfferRepository {
	return &offerRepository{db: f.db}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: begin: %w", domainerrors.ErrTransactionFailed, err)
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	tm.store.mu.RLock()
	snapshot := tm.store.state.clone()
	tm.store.mu.RUnlock()

	rollback := func() {
		tm.store.mu.Lock()
		tm.store.state = snapshot
		tm.store.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{db: txView{store: tm.store}}); err != nil {
		rollback()
		return err
	}

	return nil
}
