package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Store struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Code string    `gorm:"column:code;type:varchar(30);not null;uniqueIndex"`

	Brand string `gorm:"column:brand;type:varchar(80);not null"`
	Name  string `gorm:"column:name;type:varchar(120);not null"`
	City  string `gorm:"column:city;type:varchar(80)"`

	// Shift configuration drives the payroll late-arrival check.
	ShiftStart   string          `gorm:"column:shift_start;type:varchar(5);not null;default:'10:00'"`
	LateGraceMin int             `gorm:"column:late_grace_min;type:int;not null;default:15"`
	LatePenalty  decimal.Decimal `gorm:"column:late_penalty;type:decimal(12,2);not null;default:0"`

	Active    bool `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Store) TableName() string {
	return "stores"
}
