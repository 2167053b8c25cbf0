package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffEmail string    `gorm:"column:staff_email;type:varchar(160);not null;index:idx_leave_staff_dates"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;index:idx_leave_store_status"`

	// Inclusive on both ends.
	FromDate time.Time `gorm:"column:from_date;type:date;not null;index:idx_leave_staff_dates"`
	ToDate   time.Time `gorm:"column:to_date;type:date;not null;index:idx_leave_staff_dates"`
	Reason   string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_store_status"`
	ApprovedBy      *string    `gorm:"column:approved_by;type:varchar(160)"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
