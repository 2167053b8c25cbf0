package store

type CreateStoreRequest struct {
	Code         string `json:"code" binding:"required,max=30"`
	Brand        string `json:"brand" binding:"required,max=80"`
	Name         string `json:"name" binding:"required,max=120"`
	City         string `json:"city" binding:"max=80"`
	ShiftStart   string `json:"shift_start" binding:"required"`
	LateGraceMin int    `json:"late_grace_min" binding:"min=0"`
	LatePenalty  string `json:"late_penalty"`
}

type UpdateStoreRequest struct {
	Brand        string `json:"brand" binding:"required,max=80"`
	Name         string `json:"name" binding:"required,max=120"`
	City         string `json:"city" binding:"max=80"`
	ShiftStart   string `json:"shift_start" binding:"required"`
	LateGraceMin int    `json:"late_grace_min" binding:"min=0"`
	LatePenalty  string `json:"late_penalty"`
	Active       *bool  `json:"active"`
}

type StoreResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Brand        string `json:"brand"`
	Name         string `json:"name"`
	City         string `json:"city"`
	ShiftStart   string `json:"shift_start"`
	LateGraceMin int    `json:"late_grace_min"`
	LatePenalty  string `json:"late_penalty"`
	Active       bool   `json:"active"`
}
