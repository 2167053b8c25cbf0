package staff

type CreateStaffRequest struct {
	Email                string `json:"email" binding:"required,email"`
	FullName             string `json:"full_name" binding:"required,max=120"`
	Role                 string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN OWNER MANAGER STAFF OFFICE"`
	StoreID              string `json:"store_id"`
	BaseSalary           string `json:"base_salary"`
	LeaveDayAllowance    int    `json:"leave_day_allowance" binding:"min=0"`
	LunchAllowance       string `json:"lunch_allowance"`
	ExtraSundayAllowance string `json:"extra_sunday_allowance"`
}

type UpdateStaffRequest struct {
	FullName             string `json:"full_name" binding:"required,max=120"`
	Role                 string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN OWNER MANAGER STAFF OFFICE"`
	StoreID              string `json:"store_id"`
	BaseSalary           string `json:"base_salary"`
	LeaveDayAllowance    int    `json:"leave_day_allowance" binding:"min=0"`
	LunchAllowance       string `json:"lunch_allowance"`
	ExtraSundayAllowance string `json:"extra_sunday_allowance"`
	Active               *bool  `json:"active"`
}

type StaffResponse struct {
	ID                   string  `json:"id"`
	Email                string  `json:"email"`
	FullName             string  `json:"full_name"`
	Role                 string  `json:"role"`
	StoreID              *string `json:"store_id,omitempty"`
	BaseSalary           string  `json:"base_salary"`
	LeaveDayAllowance    int     `json:"leave_day_allowance"`
	LunchAllowance       string  `json:"lunch_allowance"`
	ExtraSundayAllowance string  `json:"extra_sunday_allowance"`
	Active               bool    `json:"active"`
}
