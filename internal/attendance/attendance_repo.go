package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByStaffAndDate(ctx context.Context, staffEmail string, date time.Time) (*Attendance, error)
	FindByStaffAndRange(ctx context.Context, staffEmail string, from, to time.Time) ([]Attendance, error)
	FindByStoreAndRange(ctx context.Context, storeID string, from, to time.Time) ([]Attendance, error)
	FindApprovedLeaveSpans(ctx context.Context, staffEmail string, from, to time.Time) ([]LeaveSpan, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByStaffAndDate(ctx context.Context, staffEmail string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("staff_email = ?", staffEmail).
		First(&a, "date = ?", date).Error
	return &a, err
}

func (r *repository) FindByStaffAndRange(ctx context.Context, staffEmail string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("staff_email = ?", staffEmail).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStoreAndRange(ctx context.Context, storeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// FindApprovedLeaveSpans reads the leave_requests table directly; the span
// overlap test is inclusive on both ends.
func (r *repository) FindApprovedLeaveSpans(ctx context.Context, staffEmail string, from, to time.Time) ([]LeaveSpan, error) {
	var rows []struct {
		FromDate time.Time
		ToDate   time.Time
	}
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("from_date, to_date").
		Where("staff_email = ?", staffEmail).
		Where("status = ?", "APPROVED").
		Where("NOT (to_date < ? OR from_date > ?)", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	spans := make([]LeaveSpan, len(rows))
	for i, row := range rows {
		spans[i] = LeaveSpan{From: row.FromDate, To: row.ToDate}
	}
	return spans, nil
}
