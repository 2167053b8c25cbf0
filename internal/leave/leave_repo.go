package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAllByStore(ctx context.Context, storeID string) ([]LeaveRequest, error)
	FindAllByStaff(ctx context.Context, staffEmail string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, staffEmail string, fromDate, toDate time.Time) (bool, error)
	FindUnapprovedOverlapping(ctx context.Context, storeID, staffEmail string, fromDate, toDate time.Time) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByStore(ctx context.Context, storeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("from_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByStaff(ctx context.Context, staffEmail string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("staff_email = ?", staffEmail).
		Order("from_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// FindUnapprovedOverlapping returns the staff member's leave requests at the
// given store that never got approved and touch the given period. Both range
// ends are inclusive.
func (r *repository) FindUnapprovedOverlapping(ctx context.Context, storeID, staffEmail string, fromDate, toDate time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("staff_email = ?", staffEmail).
		Where("status <> ?", StatusApproved).
		Where("NOT (to_date < ? OR from_date > ?)", fromDate, toDate).
		Order("from_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, staffEmail string, fromDate, toDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("staff_email = ?", staffEmail).
		Where("status <> ?", StatusRejected).
		Where("NOT (to_date < ? OR from_date > ?)", fromDate, toDate).
		Count(&count).Error
	return count > 0, err
}
