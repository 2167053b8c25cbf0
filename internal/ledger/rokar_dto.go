package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DuesLineRequest struct {
	CustomerID   *uuid.UUID      `json:"customer_id"`
	CustomerName string          `json:"customer_name" binding:"required,max=120"`
	Mobile       string          `json:"mobile" binding:"omitempty,max=20"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	ApprovedBy   string          `json:"approved_by" binding:"omitempty,max=160"`
	DueDate      string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// SaveRokarRequest is the full day sheet as submitted. Derived figures are
// never accepted from the client; they are recomputed on the server.
type SaveRokarRequest struct {
	StoreID uuid.UUID `json:"store_id" binding:"required"`
	Date    string    `json:"date" binding:"required,datetime=2006-01-02"`

	ComputerSale decimal.Decimal `json:"computer_sale"`
	ManualSale   decimal.Decimal `json:"manual_sale"`
	ManualBilled decimal.Decimal `json:"manual_billed"`

	Payments PaymentBreakdown `json:"payments"`

	DuesGivenLines []DuesLineRequest `json:"dues_given_lines" binding:"omitempty,dive"`
	DuesPaidLines  []DuesLineRequest `json:"dues_paid_lines" binding:"omitempty,dive"`

	Expenses ExpenseBreakdown `json:"expenses"`

	Cash CashBreakdown `json:"cash"`

	// Typed-back confirmation of the derived closing balance. Required for
	// regular entries, ignored for admin placeholder entries.
	ConfirmedClosingBalance *decimal.Decimal `json:"confirmed_closing_balance"`

	// Admin placeholder: persists only an opening balance for the day.
	IsAdminEntry   bool             `json:"is_admin_entry"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

type PreviewRokarRequest struct {
	StoreID uuid.UUID `json:"store_id" binding:"required"`
	Date    string    `json:"date" binding:"required,datetime=2006-01-02"`

	ComputerSale decimal.Decimal `json:"computer_sale"`
	ManualSale   decimal.Decimal `json:"manual_sale"`
	ManualBilled decimal.Decimal `json:"manual_billed"`

	Payments PaymentBreakdown `json:"payments"`

	DuesGivenLines []DuesLineRequest `json:"dues_given_lines" binding:"omitempty,dive"`
	DuesPaidLines  []DuesLineRequest `json:"dues_paid_lines" binding:"omitempty,dive"`

	Expenses ExpenseBreakdown `json:"expenses"`

	Cash CashBreakdown `json:"cash"`
}

// OpeningResolution reports where the day's opening balance came from.
type OpeningResolution struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Source         string          `json:"source"`
}

type PreviewResponse struct {
	EntryKey string          `json:"entry_key"`
	Opening  OpeningResolution `json:"opening"`

	TotalSale        decimal.Decimal `json:"total_sale"`
	TotalCashOut     decimal.Decimal `json:"total_cash_out"`
	DuesGiven        decimal.Decimal `json:"dues_given"`
	CustomerDuesPaid decimal.Decimal `json:"customer_dues_paid"`
	OtherExpenseTotal decimal.Decimal `json:"other_expense_total"`
	StaffSalaryTotal decimal.Decimal `json:"staff_salary_total"`
	ExpenseTotal     decimal.Decimal `json:"expense_total"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	CashTotal        decimal.Decimal `json:"cash_total"`
	CashDifference   decimal.Decimal `json:"cash_difference"`
	Balanced         bool            `json:"balanced"`
}

type DuesLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Kind         string          `json:"kind"`
	CustomerID   *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	Mobile       string          `json:"mobile,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	DueDate      string          `json:"due_date"`
}

type RokarEntryResponse struct {
	EntryKey string    `json:"entry_key"`
	StoreID  uuid.UUID `json:"store_id"`
	Date     string    `json:"date"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`

	ComputerSale decimal.Decimal `json:"computer_sale"`
	ManualSale   decimal.Decimal `json:"manual_sale"`
	ManualBilled decimal.Decimal `json:"manual_billed"`
	TotalSale    decimal.Decimal `json:"total_sale"`

	Payments     PaymentBreakdown `json:"payments"`
	TotalCashOut decimal.Decimal  `json:"total_cash_out"`

	DuesGiven        decimal.Decimal `json:"dues_given"`
	CustomerDuesPaid decimal.Decimal `json:"customer_dues_paid"`

	Expenses          ExpenseBreakdown `json:"expenses"`
	OtherExpenseTotal decimal.Decimal  `json:"other_expense_total"`
	StaffSalaryTotal  decimal.Decimal  `json:"staff_salary_total"`
	ExpenseTotal      decimal.Decimal  `json:"expense_total"`

	ClosingBalance decimal.Decimal `json:"closing_balance"`

	Cash      CashBreakdown   `json:"cash"`
	CashTotal decimal.Decimal `json:"cash_total"`

	IsAdminEntry bool   `json:"is_admin_entry"`
	SavedBy      string `json:"saved_by"`

	DuesLines []DuesLineResponse `json:"dues_lines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDuesLineResponse(d RokarDuesDetail) DuesLineResponse {
	return DuesLineResponse{
		ID:           d.ID,
		Kind:         d.Kind,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		Mobile:       d.Mobile,
		Amount:       d.Amount,
		ApprovedBy:   d.ApprovedBy,
		DueDate:      d.DueDate.Format("2006-01-02"),
	}
}

func ToRokarEntryResponse(e *RokarEntry) RokarEntryResponse {
	lines := make([]DuesLineResponse, 0, len(e.DuesDetails))
	for _, d := range e.DuesDetails {
		lines = append(lines, toDuesLineResponse(d))
	}
	return RokarEntryResponse{
		EntryKey:          e.EntryKey,
		StoreID:           e.StoreID,
		Date:              e.Date.Format("2006-01-02"),
		OpeningBalance:    e.OpeningBalance,
		ComputerSale:      e.ComputerSale,
		ManualSale:        e.ManualSale,
		ManualBilled:      e.ManualBilled,
		TotalSale:         e.TotalSale,
		Payments:          e.Payments,
		TotalCashOut:      e.TotalCashOut,
		DuesGiven:         e.DuesGiven,
		CustomerDuesPaid:  e.CustomerDuesPaid,
		Expenses:          e.Expenses,
		OtherExpenseTotal: e.OtherExpenseTotal,
		StaffSalaryTotal:  e.StaffSalaryTotal,
		ExpenseTotal:      e.ExpenseTotal,
		ClosingBalance:    e.ClosingBalance,
		Cash:              e.Cash,
		CashTotal:         e.CashTotal,
		IsAdminEntry:      e.IsAdminEntry,
		SavedBy:           e.SavedBy,
		DuesLines:         lines,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
