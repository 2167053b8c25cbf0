package salaryrequest

type CreateSalaryRequest struct {
	StoreID     string `json:"store_id" binding:"required,uuid"`
	StaffEmail  string `json:"staff_email" binding:"required,email"`
	StaffName   string `json:"staff_name" binding:"required,max=120"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"required"`
}

type SalaryRequestResponse struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"store_id"`
	StaffEmail  string  `json:"staff_email"`
	StaffName   string  `json:"staff_name"`
	Amount      string  `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
}
