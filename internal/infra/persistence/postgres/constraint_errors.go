package postgres

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"phresh/internal/errors"
)

// Constraint names created by the migrations.
const (
	constraintUsersEmailKey          = "users_email_key"
	constraintUsersUsernameKey       = "users_username_key"
	constraintOffersPkey             = "offers_pkey"
	constraintOneAcceptedPerCleaning = "uq_offers_one_accepted_per_cleaning"
)

// pgError extracts the driver error, if the chain still carries one.
func pgError(err error) (*pgconn.PgError, bool) {
	return errors.AsType[*pgconn.PgError](err)
}

func isUniqueConstraintViolation(err error) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isNotNullConstraintViolation(err error) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == pgerrcode.NotNullViolation
	}

	return false
}

func isCheckConstraintViolation(err error) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == pgerrcode.CheckViolation
	}

	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// uniqueViolation maps a unique violation to the sentinel registered for its constraint.
// When the constraint name was lost (gorm's TranslateError), fallback is returned.
func uniqueViolation(err error, byConstraint map[string]error, fallback error) error {
	if pgErr, ok := pgError(err); ok {
		if sentinel, found := byConstraint[pgErr.ConstraintName]; found {
			return sentinel
		}
	}

	return fallback
}
