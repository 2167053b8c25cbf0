package store

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=store_repo.go -destination=mock/store_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Store) error
	FindAll(ctx context.Context) ([]Store, error)
	FindByID(ctx context.Context, id string) (*Store, error)
	FindByCode(ctx context.Context, code string) (*Store, error)
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, s *Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Store, error) {
	var stores []Store
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&stores).Error
	return stores, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Store, error) {
	var s Store
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Store, error) {
	var s Store
	err := r.db.WithContext(ctx).First(&s, "code = ?", code).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Store) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Store{}, "id = ?", id).Error
}
