package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rokar_repo.go -destination=mock/rokar_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByKey(ctx context.Context, key string) (*RokarEntry, error)
	ListByStoreAndRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]RokarEntry, error)
	LockByKey(ctx context.Context, key string) (*RokarEntry, error)
	Replace(ctx context.Context, entry *RokarEntry) error
}

type repository struct {
	db *gorm.DB
	sq *sql.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB, sq *sql.DB) Repository {
	return &repository{db: db, sq: sq}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sq: r.sq, tx: tx}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) execer() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.sq
}

func (r *repository) FindByKey(ctx context.Context, key string) (*RokarEntry, error) {
	var entry RokarEntry
	err := r.db.WithContext(ctx).
		Preload("DuesDetails").
		First(&entry, "entry_key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListByStoreAndRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]RokarEntry, error) {
	var entries []RokarEntry
	err := r.db.WithContext(ctx).
		Preload("DuesDetails").
		Where("store_id = ? AND date >= ? AND date <= ?", storeID, from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LockByKey serializes writers on the day's key and returns the fields the
// save decision needs. Returns nil when no entry exists yet. The advisory
// lock covers the first insert, where there is no row for FOR UPDATE to
// take; it is released at transaction end.
func (r *repository) LockByKey(ctx context.Context, key string) (*RokarEntry, error) {
	if _, err := r.execer().ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return nil, err
	}

	query := `
SELECT
	entry_key,
	opening_balance,
	computer_sale,
	manual_sale,
	total_sale,
	total_cash_out,
	dues_given,
	customer_dues_paid,
	expense_total,
	staff_salary_total,
	is_admin_entry
FROM rokar_entries
WHERE entry_key = $1
FOR UPDATE
`

	var e RokarEntry
	err := r.execer().QueryRowContext(ctx, query, key).Scan(
		&e.EntryKey,
		&e.OpeningBalance,
		&e.ComputerSale,
		&e.ManualSale,
		&e.TotalSale,
		&e.TotalCashOut,
		&e.DuesGiven,
		&e.CustomerDuesPaid,
		&e.ExpenseTotal,
		&e.StaffSalaryTotal,
		&e.IsAdminEntry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Replace overwrites the day's entry and its dues lines as a unit. No
// merging with a previous record ever happens.
func (r *repository) Replace(ctx context.Context, entry *RokarEntry) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM rokar_dues_details WHERE entry_key = $1`, entry.EntryKey); err != nil {
		return err
	}

	query := `
INSERT INTO rokar_entries (
	entry_key, store_id, date, opening_balance,
	computer_sale, manual_sale, manual_billed, total_sale,
	paytm, phonepe, gpay, bank_deposit, home, total_cash_out,
	dues_given, customer_dues_paid,
	exp_tea, exp_breakfast, exp_electricity, exp_rent, exp_water_bill,
	exp_internet, exp_transport, exp_courier, exp_stationery, exp_cleaning,
	exp_repair, exp_fuel, exp_misc,
	other_expense_total, staff_salary_total, expense_total, closing_balance,
	rs5, rs10, rs20, rs50, rs100, rs200, rs500, coins, foreign_cash, cash_total,
	is_admin_entry, saved_by, created_at, updated_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6, $7, $8,
	$9, $10, $11, $12, $13, $14,
	$15, $16,
	$17, $18, $19, $20, $21,
	$22, $23, $24, $25, $26,
	$27, $28, $29,
	$30, $31, $32, $33,
	$34, $35, $36, $37, $38, $39, $40, $41, $42, $43,
	$44, $45, NOW(), NOW()
)
ON CONFLICT (entry_key) DO UPDATE SET
	opening_balance = EXCLUDED.opening_balance,
	computer_sale = EXCLUDED.computer_sale,
	manual_sale = EXCLUDED.manual_sale,
	manual_billed = EXCLUDED.manual_billed,
	total_sale = EXCLUDED.total_sale,
	paytm = EXCLUDED.paytm,
	phonepe = EXCLUDED.phonepe,
	gpay = EXCLUDED.gpay,
	bank_deposit = EXCLUDED.bank_deposit,
	home = EXCLUDED.home,
	total_cash_out = EXCLUDED.total_cash_out,
	dues_given = EXCLUDED.dues_given,
	customer_dues_paid = EXCLUDED.customer_dues_paid,
	exp_tea = EXCLUDED.exp_tea,
	exp_breakfast = EXCLUDED.exp_breakfast,
	exp_electricity = EXCLUDED.exp_electricity,
	exp_rent = EXCLUDED.exp_rent,
	exp_water_bill = EXCLUDED.exp_water_bill,
	exp_internet = EXCLUDED.exp_internet,
	exp_transport = EXCLUDED.exp_transport,
	exp_courier = EXCLUDED.exp_courier,
	exp_stationery = EXCLUDED.exp_stationery,
	exp_cleaning = EXCLUDED.exp_cleaning,
	exp_repair = EXCLUDED.exp_repair,
	exp_fuel = EXCLUDED.exp_fuel,
	exp_misc = EXCLUDED.exp_misc,
	other_expense_total = EXCLUDED.other_expense_total,
	staff_salary_total = EXCLUDED.staff_salary_total,
	expense_total = EXCLUDED.expense_total,
	closing_balance = EXCLUDED.closing_balance,
	rs5 = EXCLUDED.rs5,
	rs10 = EXCLUDED.rs10,
	rs20 = EXCLUDED.rs20,
	rs50 = EXCLUDED.rs50,
	rs100 = EXCLUDED.rs100,
	rs200 = EXCLUDED.rs200,
	rs500 = EXCLUDED.rs500,
	coins = EXCLUDED.coins,
	foreign_cash = EXCLUDED.foreign_cash,
	cash_total = EXCLUDED.cash_total,
	is_admin_entry = EXCLUDED.is_admin_entry,
	saved_by = EXCLUDED.saved_by,
	updated_at = NOW()
`

	_, err := exec.ExecContext(ctx, query,
		entry.EntryKey, entry.StoreID, entry.Date, entry.OpeningBalance,
		entry.ComputerSale, entry.ManualSale, entry.ManualBilled, entry.TotalSale,
		entry.Payments.Paytm, entry.Payments.PhonePe, entry.Payments.GPay,
		entry.Payments.BankDeposit, entry.Payments.Home, entry.TotalCashOut,
		entry.DuesGiven, entry.CustomerDuesPaid,
		entry.Expenses.Tea, entry.Expenses.Breakfast, entry.Expenses.Electricity,
		entry.Expenses.Rent, entry.Expenses.WaterBill, entry.Expenses.Internet,
		entry.Expenses.Transport, entry.Expenses.Courier, entry.Expenses.Stationery,
		entry.Expenses.Cleaning, entry.Expenses.Repair, entry.Expenses.Fuel,
		entry.Expenses.Misc,
		entry.OtherExpenseTotal, entry.StaffSalaryTotal, entry.ExpenseTotal, entry.ClosingBalance,
		entry.Cash.Rs5, entry.Cash.Rs10, entry.Cash.Rs20, entry.Cash.Rs50,
		entry.Cash.Rs100, entry.Cash.Rs200, entry.Cash.Rs500,
		entry.Cash.Coins, entry.Cash.ForeignCash, entry.CashTotal,
		entry.IsAdminEntry, entry.SavedBy,
	)
	if err != nil {
		return err
	}

	detailQuery := `
INSERT INTO rokar_dues_details (
	id, entry_key, kind, customer_id, customer_name, mobile, amount, approved_by, due_date, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
`
	for _, d := range entry.DuesDetails {
		if _, err := exec.ExecContext(ctx, detailQuery,
			d.ID, entry.EntryKey, d.Kind, d.CustomerID, d.CustomerName,
			d.Mobile, d.Amount, d.ApprovedBy, d.DueDate,
		); err != nil {
			return err
		}
	}

	return nil
}
