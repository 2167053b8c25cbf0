package salaryrequest

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

// SalaryRequest is a request to pay a staff member out of store cash.
// Approved requests with a payment date are auto-imported into that day's
// ledger as staff salary outflow.
type SalaryRequest struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID uuid.UUID `gorm:"column:store_id;type:uuid;not null;index:idx_salary_requests_store_payment"`

	StaffEmail string          `gorm:"column:staff_email;type:varchar(160);not null"`
	StaffName  string          `gorm:"column:staff_name;type:varchar(120);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null;index:idx_salary_requests_store_payment"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy  *string   `gorm:"column:approved_by;type:varchar(160)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryRequest) TableName() string {
	return "salary_requests"
}
