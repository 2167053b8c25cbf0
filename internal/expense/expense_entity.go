package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// OtherExpense is a store expense request outside the fixed Rokar
// categories. Approved requests are auto-imported into the day's ledger.
type OtherExpense struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID uuid.UUID `gorm:"column:store_id;type:uuid;not null;index:idx_other_expenses_store_date"`
	Date    time.Time `gorm:"column:date;type:date;not null;index:idx_other_expenses_store_date"`

	Category string          `gorm:"type:varchar(60);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note     string          `gorm:"type:text"`

	Status      string  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RequestedBy string  `gorm:"column:requested_by;type:varchar(160);not null"`
	ApprovedBy  *string `gorm:"column:approved_by;type:varchar(160)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OtherExpense) TableName() string {
	return "other_expenses"
}
