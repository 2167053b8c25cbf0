package expense

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *OtherExpense) error
	FindAllByStore(ctx context.Context, storeID string) ([]OtherExpense, error)
	FindByID(ctx context.Context, id string) (*OtherExpense, error)
	Update(ctx context.Context, e *OtherExpense) error
	SumApprovedByStoreAndDate(ctx context.Context, storeID string, date time.Time) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *OtherExpense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByStore(ctx context.Context, storeID string) ([]OtherExpense, error) {
	var rows []OtherExpense
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*OtherExpense, error) {
	var e OtherExpense
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *OtherExpense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) SumApprovedByStoreAndDate(ctx context.Context, storeID string, date time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&OtherExpense{}).
		Select("SUM(amount)").
		Where("store_id = ?", storeID).
		Where("status = ?", StatusApproved).
		Where("date = ?", date).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
