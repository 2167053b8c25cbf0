package ledger_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLockByKey(t *testing.T) {
	key := ledger.EntryKeyFor(testStoreID, mustDate(t, "2025-03-10"))
	lockStmt := regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")

	t.Run("takes the key lock before reading a day with no entry", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(lockStmt).
			WithArgs(key).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FOR UPDATE").
			WithArgs(key).
			WillReturnError(sql.ErrNoRows)

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil, db).WithTx(tx)
		entry, err := repo.LockByKey(context.Background(), key)

		assert.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns the locked entry's decision fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{
			"entry_key", "opening_balance", "computer_sale", "manual_sale",
			"total_sale", "total_cash_out", "dues_given", "customer_dues_paid",
			"expense_total", "staff_salary_total", "is_admin_entry",
		}).AddRow(key, "500", "1000", "0", "1000", "0", "0", "0", "0", "0", false)

		mock.ExpectBegin()
		mock.ExpectExec(lockStmt).
			WithArgs(key).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FOR UPDATE").
			WithArgs(key).
			WillReturnRows(rows)

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil, db).WithTx(tx)
		entry, err := repo.LockByKey(context.Background(), key)

		assert.NoError(t, err)
		assert.Equal(t, key, entry.EntryKey)
		assert.True(t, entry.TotalSale.Equal(dec("1000")))
		assert.True(t, entry.IsSubstantial())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces a lock failure without reading", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(lockStmt).
			WithArgs(key).
			WillReturnError(sql.ErrConnDone)

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil, db).WithTx(tx)
		entry, err := repo.LockByKey(context.Background(), key)

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
