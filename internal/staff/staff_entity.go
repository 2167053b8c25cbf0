package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleOwner      = "OWNER"
	RoleManager    = "MANAGER"
	RoleStaff      = "STAFF"
	RoleOffice     = "OFFICE"
)

// Staff profiles are never hard-deleted; Active is the soft status flag.
type Staff struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string     `gorm:"column:email;type:varchar(160);not null;uniqueIndex"`
	FullName string     `gorm:"column:full_name;type:varchar(120);not null"`
	Role     string     `gorm:"column:role;type:varchar(20);not null;default:'STAFF';index"`
	StoreID  *uuid.UUID `gorm:"column:store_id;type:uuid;index"`

	BaseSalary           decimal.Decimal `gorm:"column:base_salary;type:decimal(12,2);not null;default:0"`
	LeaveDayAllowance    int             `gorm:"column:leave_day_allowance;type:int;not null;default:0"`
	LunchAllowance       decimal.Decimal `gorm:"column:lunch_allowance;type:decimal(12,2);not null;default:0"`
	ExtraSundayAllowance decimal.Decimal `gorm:"column:extra_sunday_allowance;type:decimal(12,2);not null;default:0"`

	Active    bool `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Staff) TableName() string {
	return "staff_profiles"
}
