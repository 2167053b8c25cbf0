package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DuesKindGiven = "GIVEN"
	DuesKindPaid  = "PAID"
)

// PaymentBreakdown holds the five non-cash channels money left the till
// through during the day.
type PaymentBreakdown struct {
	Paytm       decimal.Decimal `gorm:"column:paytm;type:decimal(12,2);not null;default:0" json:"paytm"`
	PhonePe     decimal.Decimal `gorm:"column:phonepe;type:decimal(12,2);not null;default:0" json:"phonepe"`
	GPay        decimal.Decimal `gorm:"column:gpay;type:decimal(12,2);not null;default:0" json:"gpay"`
	BankDeposit decimal.Decimal `gorm:"column:bank_deposit;type:decimal(12,2);not null;default:0" json:"bank_deposit"`
	Home        decimal.Decimal `gorm:"column:home;type:decimal(12,2);not null;default:0" json:"home"`
}

func (p PaymentBreakdown) Sum() decimal.Decimal {
	return p.Paytm.Add(p.PhonePe).Add(p.GPay).Add(p.BankDeposit).Add(p.Home)
}

// ExpenseBreakdown is the fixed set of day-to-day expense categories
// entered directly on the Rokar page.
type ExpenseBreakdown struct {
	Tea         decimal.Decimal `gorm:"column:exp_tea;type:decimal(12,2);not null;default:0" json:"tea"`
	Breakfast   decimal.Decimal `gorm:"column:exp_breakfast;type:decimal(12,2);not null;default:0" json:"breakfast"`
	Electricity decimal.Decimal `gorm:"column:exp_electricity;type:decimal(12,2);not null;default:0" json:"electricity"`
	Rent        decimal.Decimal `gorm:"column:exp_rent;type:decimal(12,2);not null;default:0" json:"rent"`
	WaterBill   decimal.Decimal `gorm:"column:exp_water_bill;type:decimal(12,2);not null;default:0" json:"water_bill"`
	Internet    decimal.Decimal `gorm:"column:exp_internet;type:decimal(12,2);not null;default:0" json:"internet"`
	Transport   decimal.Decimal `gorm:"column:exp_transport;type:decimal(12,2);not null;default:0" json:"transport"`
	Courier     decimal.Decimal `gorm:"column:exp_courier;type:decimal(12,2);not null;default:0" json:"courier"`
	Stationery  decimal.Decimal `gorm:"column:exp_stationery;type:decimal(12,2);not null;default:0" json:"stationery"`
	Cleaning    decimal.Decimal `gorm:"column:exp_cleaning;type:decimal(12,2);not null;default:0" json:"cleaning"`
	Repair      decimal.Decimal `gorm:"column:exp_repair;type:decimal(12,2);not null;default:0" json:"repair"`
	Fuel        decimal.Decimal `gorm:"column:exp_fuel;type:decimal(12,2);not null;default:0" json:"fuel"`
	Misc        decimal.Decimal `gorm:"column:exp_misc;type:decimal(12,2);not null;default:0" json:"misc"`
}

func (e ExpenseBreakdown) categories() []decimal.Decimal {
	return []decimal.Decimal{
		e.Tea, e.Breakfast, e.Electricity, e.Rent, e.WaterBill, e.Internet,
		e.Transport, e.Courier, e.Stationery, e.Cleaning, e.Repair, e.Fuel,
		e.Misc,
	}
}

func (e ExpenseBreakdown) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range e.categories() {
		total = total.Add(v)
	}
	return total
}

// CashBreakdown is the physical count of the till: note counts by
// denomination plus loose amounts counted at face value.
type CashBreakdown struct {
	Rs5         int             `gorm:"column:rs5;type:int;not null;default:0" json:"rs5"`
	Rs10        int             `gorm:"column:rs10;type:int;not null;default:0" json:"rs10"`
	Rs20        int             `gorm:"column:rs20;type:int;not null;default:0" json:"rs20"`
	Rs50        int             `gorm:"column:rs50;type:int;not null;default:0" json:"rs50"`
	Rs100       int             `gorm:"column:rs100;type:int;not null;default:0" json:"rs100"`
	Rs200       int             `gorm:"column:rs200;type:int;not null;default:0" json:"rs200"`
	Rs500       int             `gorm:"column:rs500;type:int;not null;default:0" json:"rs500"`
	Coins       decimal.Decimal `gorm:"column:coins;type:decimal(12,2);not null;default:0" json:"coins"`
	ForeignCash decimal.Decimal `gorm:"column:foreign_cash;type:decimal(12,2);not null;default:0" json:"foreign_cash"`
}

// Total is count times face value per denomination, plus the loose fields.
func (c CashBreakdown) Total() decimal.Decimal {
	total := decimal.NewFromInt(int64(5*c.Rs5 + 10*c.Rs10 + 20*c.Rs20 + 50*c.Rs50 + 100*c.Rs100 + 200*c.Rs200 + 500*c.Rs500))
	return total.Add(c.Coins).Add(c.ForeignCash)
}

// RokarEntry is one store's ledger for one business day. The entry key
// doubles as identity and uniqueness constraint.
type RokarEntry struct {
	EntryKey string    `gorm:"column:entry_key;type:varchar(50);primaryKey"`
	StoreID  uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Date     time.Time `gorm:"column:date;type:date;not null"`

	OpeningBalance decimal.Decimal `gorm:"column:opening_balance;type:decimal(14,2);not null;default:0"`

	ComputerSale decimal.Decimal `gorm:"column:computer_sale;type:decimal(12,2);not null;default:0"`
	ManualSale   decimal.Decimal `gorm:"column:manual_sale;type:decimal(12,2);not null;default:0"`
	ManualBilled decimal.Decimal `gorm:"column:manual_billed;type:decimal(12,2);not null;default:0"`
	TotalSale    decimal.Decimal `gorm:"column:total_sale;type:decimal(12,2);not null;default:0"`

	Payments     PaymentBreakdown `gorm:"embedded"`
	TotalCashOut decimal.Decimal  `gorm:"column:total_cash_out;type:decimal(12,2);not null;default:0"`

	DuesGiven        decimal.Decimal `gorm:"column:dues_given;type:decimal(12,2);not null;default:0"`
	CustomerDuesPaid decimal.Decimal `gorm:"column:customer_dues_paid;type:decimal(12,2);not null;default:0"`

	Expenses          ExpenseBreakdown `gorm:"embedded"`
	OtherExpenseTotal decimal.Decimal  `gorm:"column:other_expense_total;type:decimal(12,2);not null;default:0"`
	StaffSalaryTotal  decimal.Decimal  `gorm:"column:staff_salary_total;type:decimal(12,2);not null;default:0"`
	ExpenseTotal      decimal.Decimal  `gorm:"column:expense_total;type:decimal(12,2);not null;default:0"`

	ClosingBalance decimal.Decimal `gorm:"column:closing_balance;type:decimal(14,2);not null;default:0"`

	Cash      CashBreakdown   `gorm:"embedded"`
	CashTotal decimal.Decimal `gorm:"column:cash_total;type:decimal(14,2);not null;default:0"`

	// An admin entry carries only an opening balance override and never
	// blocks the day's real entry.
	IsAdminEntry bool   `gorm:"column:is_admin_entry;not null;default:false"`
	SavedBy      string `gorm:"column:saved_by;type:varchar(160)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	DuesDetails []RokarDuesDetail `gorm:"foreignKey:EntryKey;references:EntryKey"`
}

func (RokarEntry) TableName() string {
	return "rokar_entries"
}

// RokarDuesDetail is one itemized credit line inside a Rokar entry.
type RokarDuesDetail struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryKey string    `gorm:"column:entry_key;type:varchar(50);not null;index"`
	Kind     string    `gorm:"column:kind;type:varchar(10);not null"`

	CustomerID   *uuid.UUID      `gorm:"column:customer_id;type:uuid"`
	CustomerName string          `gorm:"column:customer_name;type:varchar(120);not null"`
	Mobile       string          `gorm:"column:mobile;type:varchar(20)"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	ApprovedBy   string          `gorm:"column:approved_by;type:varchar(160)"`
	DueDate      time.Time       `gorm:"column:due_date;type:date;not null"`

	CreatedAt time.Time
}

func (RokarDuesDetail) TableName() string {
	return "rokar_dues_details"
}

// EntryKeyFor builds the composite ledger key "{storeID}_{YYYY-MM-DD}". The
// key is both identity and uniqueness constraint, so the scheme must never
// change for existing data.
func EntryKeyFor(storeID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s_%s", storeID, date.Format("2006-01-02"))
}

// IsSubstantial reports whether this record carries real business data and
// must therefore block re-entry. Amounts are non-negative, so the derived
// totals stand in for their breakdowns: total_cash_out for the payment
// channels, expense_total for the expense categories.
func (e *RokarEntry) IsSubstantial() bool {
	if e.IsAdminEntry {
		return false
	}
	for _, v := range []decimal.Decimal{
		e.TotalSale, e.ComputerSale, e.ManualSale,
		e.TotalCashOut, e.ExpenseTotal, e.StaffSalaryTotal,
		e.CustomerDuesPaid, e.DuesGiven,
	} {
		if v.IsPositive() {
			return true
		}
	}
	return false
}
