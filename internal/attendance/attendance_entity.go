package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayAnswers is the fixed schema for the daily check-in questionnaire.
// Every field is optional on the wire; a missing field contributes zero.
type DayAnswers struct {
	YesterdaySale   decimal.Decimal `gorm:"column:yesterday_sale;type:decimal(12,2);not null;default:0"`
	TodayTarget     decimal.Decimal `gorm:"column:today_target;type:decimal(12,2);not null;default:0"`
	UniformOK       bool            `gorm:"column:uniform_ok;not null;default:false"`
	ShoesOK         bool            `gorm:"column:shoes_ok;not null;default:false"`
	GoogleReviews   int             `gorm:"column:google_reviews;type:int;not null;default:0"`
	CustomerUpdates int             `gorm:"column:customer_updates;type:int;not null;default:0"`
}

type Attendance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffEmail string    `gorm:"column:staff_email;type:varchar(160);not null;uniqueIndex:uq_attendance_staff_date"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_staff_date"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`

	Present bool    `gorm:"column:present;not null;default:false"`
	CheckIn *string `gorm:"column:check_in;type:varchar(5)"`

	Answers DayAnswers `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Attendance) TableName() string {
	return "attendance"
}
