package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	StoreID uuid.UUID `json:"store_id" binding:"required"`
	Name    string    `json:"name" binding:"required,max=120"`
	Mobile  string    `json:"mobile" binding:"required,max=20"`
}

type UpdateCustomerRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=120"`
	Mobile *string `json:"mobile" binding:"omitempty,max=20"`
}

type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"store_id"`
	Name        string          `json:"name"`
	Mobile      string          `json:"mobile"`
	Outstanding decimal.Decimal `json:"outstanding"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		StoreID:     c.StoreID,
		Name:        c.Name,
		Mobile:      c.Mobile,
		Outstanding: c.Outstanding,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
