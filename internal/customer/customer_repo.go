package customer

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindAllByStore(ctx context.Context, storeID string) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	AdjustOutstanding(ctx context.Context, id string, delta decimal.Decimal) error
	MarkEntryApplied(ctx context.Context, entryKey string) (bool, error)
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

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.sq
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAllByStore(ctx context.Context, storeID string) ([]Customer, error) {
	var customers []Customer
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// AdjustOutstanding moves the balance by delta in one statement so
// concurrent adjustments never lose updates.
func (r *repository) AdjustOutstanding(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `
UPDATE customers
SET outstanding = outstanding + $2, updated_at = NOW()
WHERE id = $1
`
	res, err := r.execer().ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkEntryApplied claims a ledger entry for dues application. Returns
// false when another consumer already applied it.
func (r *repository) MarkEntryApplied(ctx context.Context, entryKey string) (bool, error) {
	query := `
INSERT INTO rokar_dues_applications (entry_key, applied_at)
VALUES ($1, NOW())
ON CONFLICT (entry_key) DO NOTHING
`
	res, err := r.execer().ExecContext(ctx, query, entryKey)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
