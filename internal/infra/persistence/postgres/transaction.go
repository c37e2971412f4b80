package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/domain/repository"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// UserRepo returns a user repository bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// ProfileRepo returns a profile repository bound to the transaction.
func (f *gormRepositoryFactory) ProfileRepo() repository.ProfileRepository {
	return NewProfileRepository(f.tx)
}

// CleaningRepo returns a cleaning repository bound to the transaction.
func (f *gormRepositoryFactory) CleaningRepo() repository.CleaningRepository {
	return NewCleaningRepository(f.tx)
}

// OfferRepo returns an offer repository bound to the transaction.
func (f *gormRepositoryFactory) OfferRepo() repository.OfferRepository {
	return NewOfferRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	// Begin a new transaction
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: begin: %w", domainerrors.ErrTransactionFailed, tx.Error)
	}

	// A panic inside the callback still rolls the transaction back.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow echo's recover middleware to handle the panic.
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Deferred constraints surface at commit time.
			return uniqueViolation(err, commitUniqueConstraints, err)
		}
		return fmt.Errorf("%w: commit: %w", domainerrors.ErrTransactionFailed, err)
	}

	return nil
}

var commitUniqueConstraints = map[string]error{
	constraintUsersEmailKey:          repository.ErrEmailExists,
	constraintUsersUsernameKey:       repository.ErrUsernameExists,
	constraintOffersPkey:             repository.ErrOfferExists,
	constraintOneAcceptedPerCleaning: repository.ErrAcceptedOfferExists,
}
