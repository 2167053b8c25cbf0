package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SetTargetRequest struct {
	StoreID    uuid.UUID       `json:"store_id" binding:"required"`
	StaffEmail string          `json:"staff_email" binding:"required,email"`
	Month      string          `json:"month" binding:"required,datetime=2006-01"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

type TargetResponse struct {
	ID         uuid.UUID       `json:"id"`
	StoreID    uuid.UUID       `json:"store_id"`
	StaffEmail string          `json:"staff_email"`
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	SetBy      string          `json:"set_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AchievementResponse reports month-to-date sales against the target.
// Percent is zero when no target amount is set.
type AchievementResponse struct {
	StaffEmail string          `json:"staff_email"`
	Month      string          `json:"month"`
	Target     decimal.Decimal `json:"target"`
	Achieved   decimal.Decimal `json:"achieved"`
	Percent    decimal.Decimal `json:"percent"`
}

func ToTargetResponse(t *Target) TargetResponse {
	return TargetResponse{
		ID:         t.ID,
		StoreID:    t.StoreID,
		StaffEmail: t.StaffEmail,
		Month:      t.Month,
		Amount:     t.Amount,
		SetBy:      t.SetBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
