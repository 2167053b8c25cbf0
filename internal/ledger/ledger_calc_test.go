package ledger_test

import (
	"testing"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_TypicalDay(t *testing.T) {
	in := ledger.CalcInput{
		OpeningBalance: dec("5000"),
		ComputerSale:   dec("12000"),
		ManualSale:     dec("3000"),
		ManualBilled:   dec("1000"),
		Payments: ledger.PaymentBreakdown{
			Paytm:       dec("2000"),
			PhonePe:     dec("1500"),
			BankDeposit: dec("4000"),
		},
		DuesGiven:        dec("500"),
		CustomerDuesPaid: dec("300"),
		Expenses: ledger.ExpenseBreakdown{
			Tea:  dec("50"),
			Rent: dec("0"),
			Misc: dec("150"),
		},
		OtherExpenseTotal: dec("200"),
		StaffSalaryTotal:  dec("1000"),
		Cash: ledger.CashBreakdown{
			Rs500: 17,
			Rs100: 24,
			Rs10:  5,
			Coins: dec("0.50"),
		},
	}

	out := ledger.ComputeTotals(in)

	assert.True(t, out.TotalSale.Equal(dec("14000")), "total sale %s", out.TotalSale)
	assert.True(t, out.TotalCashOut.Equal(dec("7500")), "total cash out %s", out.TotalCashOut)
	assert.True(t, out.ExpenseTotal.Equal(dec("400")), "expense total %s", out.ExpenseTotal)
	// 5000 + 14000 + 300 - 500 - 7500 - 400 - 1000
	assert.True(t, out.ClosingBalance.Equal(dec("9900")), "closing %s", out.ClosingBalance)
	// 17*500 + 24*100 + 5*10 + 0.50
	assert.True(t, out.CashTotal.Equal(dec("10950.50")), "cash total %s", out.CashTotal)
	assert.True(t, out.CashDifference.Equal(dec("-1050.50")), "difference %s", out.CashDifference)
	assert.False(t, out.Balanced)
}

func TestComputeTotals_TotalSaleClampedAtZero(t *testing.T) {
	out := ledger.ComputeTotals(ledger.CalcInput{
		ComputerSale: dec("100"),
		ManualSale:   dec("50"),
		ManualBilled: dec("500"),
	})

	assert.True(t, out.TotalSale.IsZero(), "total sale %s", out.TotalSale)
	assert.True(t, out.ClosingBalance.IsZero(), "closing %s", out.ClosingBalance)
}

func TestComputeTotals_BalancedWithinTolerance(t *testing.T) {
	base := ledger.CalcInput{
		OpeningBalance: dec("1000"),
		Cash:           ledger.CashBreakdown{Rs100: 10},
	}

	cases := []struct {
		name     string
		coins    string
		balanced bool
	}{
		{"exact match", "0", true},
		{"ninety nine paise over", "0.99", true},
		{"exactly one rupee over", "1.00", false},
		{"exactly one rupee short", "-1.00", false},
		{"ninety nine paise short", "-0.99", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			in.Cash.Coins = dec(tc.coins)
			out := ledger.ComputeTotals(in)
			assert.Equal(t, tc.balanced, out.Balanced, "difference %s", out.CashDifference)
		})
	}
}

func TestComputeTotals_ClosingIdentity(t *testing.T) {
	in := ledger.CalcInput{
		OpeningBalance:    dec("1234.56"),
		ComputerSale:      dec("900"),
		ManualSale:        dec("210.40"),
		ManualBilled:      dec("110.40"),
		Payments:          ledger.PaymentBreakdown{GPay: dec("350"), Home: dec("75.25")},
		DuesGiven:         dec("60"),
		CustomerDuesPaid:  dec("40"),
		Expenses:          ledger.ExpenseBreakdown{Electricity: dec("120"), Fuel: dec("80")},
		OtherExpenseTotal: dec("19.99"),
		StaffSalaryTotal:  dec("500"),
	}

	out := ledger.ComputeTotals(in)

	want := in.OpeningBalance.
		Add(out.TotalSale).
		Add(in.CustomerDuesPaid).
		Sub(in.DuesGiven).
		Sub(out.TotalCashOut).
		Sub(out.ExpenseTotal).
		Sub(in.StaffSalaryTotal)
	assert.True(t, out.ClosingBalance.Equal(want), "closing %s want %s", out.ClosingBalance, want)
}

func TestCashBreakdownTotal(t *testing.T) {
	cash := ledger.CashBreakdown{
		Rs5:         3,
		Rs10:        2,
		Rs20:        1,
		Rs50:        4,
		Rs100:       5,
		Rs200:       2,
		Rs500:       1,
		Coins:       dec("12.50"),
		ForeignCash: dec("200"),
	}

	// 15 + 20 + 20 + 200 + 500 + 400 + 500 = 1655 in notes
	assert.True(t, cash.Total().Equal(dec("1867.50")), "total %s", cash.Total())
}

func TestSumDuesAmounts(t *testing.T) {
	details := []ledger.RokarDuesDetail{
		{Kind: ledger.DuesKindGiven, Amount: dec("100")},
		{Kind: ledger.DuesKindPaid, Amount: dec("40")},
		{Kind: ledger.DuesKindGiven, Amount: dec("250.50")},
		{Kind: ledger.DuesKindPaid, Amount: dec("9.50")},
	}

	assert.True(t, ledger.SumDuesAmounts(details, ledger.DuesKindGiven).Equal(dec("350.50")))
	assert.True(t, ledger.SumDuesAmounts(details, ledger.DuesKindPaid).Equal(dec("50")))
	assert.True(t, ledger.SumDuesAmounts(nil, ledger.DuesKindGiven).IsZero())
}

func TestRokarEntryIsSubstantial(t *testing.T) {
	cases := []struct {
		name  string
		entry ledger.RokarEntry
		want  bool
	}{
		{"empty entry", ledger.RokarEntry{}, false},
		{"opening balance only", ledger.RokarEntry{OpeningBalance: dec("5000")}, false},
		{"has sales", ledger.RokarEntry{TotalSale: dec("100")}, true},
		{"has cash out", ledger.RokarEntry{TotalCashOut: dec("1")}, true},
		{"has expenses", ledger.RokarEntry{ExpenseTotal: dec("0.01")}, true},
		{"has salary payout", ledger.RokarEntry{StaffSalaryTotal: dec("200")}, true},
		{"has dues movement", ledger.RokarEntry{DuesGiven: dec("50")}, true},
		{"admin entry with figures", ledger.RokarEntry{IsAdminEntry: true, TotalSale: dec("100")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entry.IsSubstantial())
		})
	}
}

func TestEntryKeyFor(t *testing.T) {
	storeID := mustUUID(t, "6f1d8a64-64a4-4b63-84f8-6a1f4c8738d2")
	date := mustDate(t, "2025-03-09")

	assert.Equal(t, "6f1d8a64-64a4-4b63-84f8-6a1f4c8738d2_2025-03-09", ledger.EntryKeyFor(storeID, date))
}
