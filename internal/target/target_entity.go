package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Target is one staff member's sales goal for one month.
type Target struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	StaffEmail string    `gorm:"column:staff_email;type:varchar(160);not null;uniqueIndex:uq_target_staff_month"`

	Month  string          `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_target_staff_month"`
	Amount decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`

	SetBy string `gorm:"column:set_by;type:varchar(160)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Target) TableName() string {
	return "targets"
}
