package ledger

import "github.com/shopspring/decimal"

// CashTolerance is the maximum absolute difference between the derived
// closing balance and the counted cash that still counts as a balanced day.
var CashTolerance = decimal.NewFromInt(1)

// CalcInput is everything a single day's derivation needs. Amount fields
// are taken as-is; negative business figures must be rejected upstream.
type CalcInput struct {
	OpeningBalance decimal.Decimal

	ComputerSale decimal.Decimal
	ManualSale   decimal.Decimal
	ManualBilled decimal.Decimal

	Payments PaymentBreakdown

	DuesGiven        decimal.Decimal
	CustomerDuesPaid decimal.Decimal

	Expenses          ExpenseBreakdown
	OtherExpenseTotal decimal.Decimal
	StaffSalaryTotal  decimal.Decimal

	Cash CashBreakdown
}

// CalcResult carries every derived figure of the day.
type CalcResult struct {
	TotalSale      decimal.Decimal `json:"total_sale"`
	TotalCashOut   decimal.Decimal `json:"total_cash_out"`
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	CashTotal      decimal.Decimal `json:"cash_total"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	Balanced       bool            `json:"balanced"`
}

// ComputeTotals derives the day's totals from its inputs.
//
// Manual sale entered here is the full handwritten figure; the portion
// later rung through the billing machine (manualBilled) would otherwise be
// counted twice, so it is subtracted, clamped at zero.
func ComputeTotals(in CalcInput) CalcResult {
	totalSale := in.ComputerSale.Add(in.ManualSale).Sub(in.ManualBilled)
	if totalSale.IsNegative() {
		totalSale = decimal.Zero
	}

	totalCashOut := in.Payments.Sum()
	expenseTotal := in.Expenses.Sum().Add(in.OtherExpenseTotal)

	closing := in.OpeningBalance.
		Add(totalSale).
		Add(in.CustomerDuesPaid).
		Sub(in.DuesGiven).
		Sub(totalCashOut).
		Sub(expenseTotal).
		Sub(in.StaffSalaryTotal)

	cashTotal := in.Cash.Total()
	diff := closing.Sub(cashTotal)

	return CalcResult{
		TotalSale:      totalSale,
		TotalCashOut:   totalCashOut,
		ExpenseTotal:   expenseTotal,
		ClosingBalance: closing,
		CashTotal:      cashTotal,
		CashDifference: diff,
		Balanced:       diff.Abs().LessThan(CashTolerance),
	}
}

// SumDuesAmounts totals the itemized credit lines of one kind.
func SumDuesAmounts(details []RokarDuesDetail, kind string) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		if d.Kind == kind {
			total = total.Add(d.Amount)
		}
	}
	return total
}
