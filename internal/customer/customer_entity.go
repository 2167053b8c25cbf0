package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a store-level credit customer. Outstanding tracks unpaid
// dues: credit given raises it, repayments lower it.
type Customer struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:uq_customer_store_mobile"`

	Name   string `gorm:"column:name;type:varchar(120);not null"`
	Mobile string `gorm:"column:mobile;type:varchar(20);not null;uniqueIndex:uq_customer_store_mobile"`

	Outstanding decimal.Decimal `gorm:"column:outstanding;type:decimal(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string {
	return "customers"
}
