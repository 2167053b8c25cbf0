package staff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	FindAll(ctx context.Context) ([]Staff, error)
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	FindByStore(ctx context.Context, storeID string) ([]Staff, error)
	FindByStoreAndRole(ctx context.Context, storeID, role string) ([]Staff, error)
	Update(ctx context.Context, s *Staff) error
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

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	return &s, err
}

func (r *repository) FindByStore(ctx context.Context, storeID string) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("active = true").
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStoreAndRole(ctx context.Context, storeID, role string) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("role = ?", role).
		Where("active = true").
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}
