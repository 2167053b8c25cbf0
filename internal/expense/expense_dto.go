package expense

type CreateExpenseRequest struct {
	StoreID  string `json:"store_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Category string `json:"category" binding:"required,max=60"`
	Amount   string `json:"amount" binding:"required"`
	Note     string `json:"note"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"store_id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`
	Note        string  `json:"note"`
	Status      string  `json:"status"`
	RequestedBy string  `json:"requested_by"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
}
