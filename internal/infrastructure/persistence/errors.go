package persistence

import (
	"context"
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jewelry/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the classifier recognises
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// MySQL error numbers the classifier recognises
const (
	mysqlDuplicateEntry     = 1062
	mysqlLockWaitTimeout    = 1205
	mysqlDeadlock           = 1213
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlMaxExecutionTime   = 3024
	mysqlCheckConstraintErr = 3819
)

// ClassifyError maps an error leaving the persistence layer onto the domain taxonomy.
// Domain errors pass through unchanged; anything unrecognised becomes an opaque,
// retryable PersistenceFailure that keeps the driver error as its cause.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return shared.NewTransactionTimeout(op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrReferentialConflict
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.NewPersistenceFailure(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgQueryCanceled:
			return shared.NewTransactionTimeout(op, err)
		case pgForeignKeyViolation:
			return shared.ErrReferentialConflict
		case pgUniqueViolation, pgCheckViolation, pgSerializationFailure, pgDeadlockDetected:
			return shared.NewPersistenceFailure(op, err)
		}
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlLockWaitTimeout, mysqlMaxExecutionTime:
			return shared.NewTransactionTimeout(op, err)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return shared.ErrReferentialConflict
		case mysqlDuplicateEntry, mysqlDeadlock, mysqlCheckConstraintErr:
			return shared.NewPersistenceFailure(op, err)
		}
	}

	return shared.NewPersistenceFailure(op, err)
}
