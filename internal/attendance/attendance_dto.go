package attendance

type MarkAttendanceRequest struct {
	Date    string `json:"date" binding:"required"`
	Present *bool  `json:"present" binding:"required"`
	CheckIn string `json:"check_in"`

	YesterdaySale   string `json:"yesterday_sale"`
	TodayTarget     string `json:"today_target"`
	UniformOK       bool   `json:"uniform_ok"`
	ShoesOK         bool   `json:"shoes_ok"`
	GoogleReviews   int    `json:"google_reviews" binding:"min=0"`
	CustomerUpdates int    `json:"customer_updates" binding:"min=0"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	StaffEmail string  `json:"staff_email"`
	Date       string  `json:"date"`
	StoreID    string  `json:"store_id"`
	Present    bool    `json:"present"`
	CheckIn    *string `json:"check_in,omitempty"`

	YesterdaySale   string `json:"yesterday_sale"`
	TodayTarget     string `json:"today_target"`
	UniformOK       bool   `json:"uniform_ok"`
	ShoesOK         bool   `json:"shoes_ok"`
	GoogleReviews   int    `json:"google_reviews"`
	CustomerUpdates int    `json:"customer_updates"`
}

type MonthlySummaryResponse struct {
	StaffEmail string `json:"staff_email"`
	Month      string `json:"month"`

	DaysInMonth int `json:"days_in_month"`
	Present     int `json:"present"`
	Absent      int `json:"absent"`
	LeaveDays   int `json:"leave_days"`
	Future      int `json:"future"`
	NoData      int `json:"no_data"`

	UniformCompliant int    `json:"uniform_compliant"`
	ShoesCompliant   int    `json:"shoes_compliant"`
	TotalSale        string `json:"total_sale"`
	TotalTarget      string `json:"total_target"`
	GoogleReviews    int    `json:"google_reviews"`
	CustomerUpdates  int    `json:"customer_updates"`

	AverageCheckIn string            `json:"average_check_in"`
	Days           map[string]string `json:"days"`
}
