package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// WithLockTimeout runs fn inside tx with row lock waits bounded by timeout.
// Postgres scopes the setting to the transaction. MySQL can only set it on
// the session, so the previous value is put back once fn returns and the
// pooled connection keeps its server default.
func WithLockTimeout(tx *gorm.DB, timeout time.Duration, fn func() error) (err error) {
	if timeout <= 0 {
		return fn()
	}

	switch tx.Dialector.Name() {
	case "postgres":
		if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = %d", timeout.Milliseconds())).Error; err != nil {
			return err
		}
		return fn()
	case "mysql":
		var previous int64
		if err := tx.Raw("SELECT @@SESSION.innodb_lock_wait_timeout").Scan(&previous).Error; err != nil {
			return err
		}

		// innodb only has second granularity
		seconds := int64(timeout / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		if err := setInnoDBLockWait(tx, seconds); err != nil {
			return err
		}
		defer func() {
			if restoreErr := setInnoDBLockWait(tx, previous); restoreErr != nil && err == nil {
				err = restoreErr
			}
		}()
		return fn()
	default:
		// sqlite waits through _busy_timeout
		return fn()
	}
}

func setInnoDBLockWait(tx *gorm.DB, seconds int64) error {
	return tx.Exec(fmt.Sprintf("SET SESSION innodb_lock_wait_timeout = %d", seconds)).Error
}

// IsLockContention reports whether err means a lock could not be obtained in
// time: lock or statement timeouts, deadlocks, serialization failures and
// busy SQLite databases.
func IsLockContention(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", // lock_not_available
			"40P01", // deadlock_detected
			"40001": // serialization_failure
			return true
		}
		return false
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// lock wait timeout, deadlock
		return myErr.Number == 1205 || myErr.Number == 1213
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	return false
}
