package target

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=target_repo.go -destination=mock/target_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, t *Target) error
	FindByStaffAndMonth(ctx context.Context, staffEmail, month string) (*Target, error)
	FindAllByStoreAndMonth(ctx context.Context, storeID, month string) ([]Target, error)
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

// Upsert sets the month's target, replacing any previous amount for the
// same staff and month.
func (r *repository) Upsert(ctx context.Context, t *Target) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "staff_email"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "set_by", "updated_at"}),
		}).
		Create(t).Error
}

func (r *repository) FindByStaffAndMonth(ctx context.Context, staffEmail, month string) (*Target, error) {
	var t Target
	err := r.db.WithContext(ctx).
		First(&t, "staff_email = ? AND month = ?", staffEmail, month).Error
	return &t, err
}

func (r *repository) FindAllByStoreAndMonth(ctx context.Context, storeID, month string) ([]Target, error) {
	var targets []Target
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND month = ?", storeID, month).
		Order("staff_email ASC").
		Find(&targets).Error
	return targets, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Target{}, "id = ?", id).Error
}
