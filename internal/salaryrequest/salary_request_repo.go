package salaryrequest

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_request_repo.go -destination=mock/salary_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *SalaryRequest) error
	FindAllByStore(ctx context.Context, storeID string) ([]SalaryRequest, error)
	FindByID(ctx context.Context, id string) (*SalaryRequest, error)
	Update(ctx context.Context, s *SalaryRequest) error
	SumApprovedByStoreAndPaymentDate(ctx context.Context, storeID string, paymentDate time.Time) (decimal.Decimal, error)
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

func (r *repository) Create(ctx context.Context, s *SalaryRequest) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByStore(ctx context.Context, storeID string) ([]SalaryRequest, error) {
	var rows []SalaryRequest
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("payment_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryRequest, error) {
	var s SalaryRequest
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *SalaryRequest) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) SumApprovedByStoreAndPaymentDate(ctx context.Context, storeID string, paymentDate time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&SalaryRequest{}).
		Select("SUM(amount)").
		Where("store_id = ?", storeID).
		Where("status = ?", StatusApproved).
		Where("payment_date = ?", paymentDate).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
