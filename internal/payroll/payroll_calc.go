package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/leave"
)

// Config holds the fixed payroll constants. The 30-day basis applies to
// every month regardless of its calendar length.
type Config struct {
	AssumedWorkingDays  int
	SalaryDivisorDays   int64
	UnapprovedLeaveFine decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		AssumedWorkingDays:  30,
		SalaryDivisorDays:   30,
		UnapprovedLeaveFine: decimal.NewFromInt(200),
	}
}

// StaffInput is the slice of a staff profile the computation reads.
type StaffInput struct {
	Email                string
	FullName             string
	BaseSalary           decimal.Decimal
	LeaveDayAllowance    int
	LunchAllowance       decimal.Decimal
	ExtraSundayAllowance decimal.Decimal
}

// ShiftConfig is the store-level lateness configuration.
type ShiftConfig struct {
	ShiftStart   string
	LateGraceMin int
	LatePenalty  decimal.Decimal
}

// SalaryRow is one staff member's computed month. It is never persisted;
// every request recomputes it from the source records.
type SalaryRow struct {
	StaffEmail string `json:"staff_email"`
	StaffName  string `json:"staff_name"`

	BaseSalary decimal.Decimal `json:"base_salary"`

	DaysPresent         int `json:"days_present"`
	Absences            int `json:"absences"`
	ExcessLeaves        int `json:"excess_leaves"`
	LateCount           int `json:"late_count"`
	UnapprovedLeaveDays int `json:"unapproved_leave_days"`
	SundaysPresent      int `json:"sundays_present"`

	LeaveDeduction           decimal.Decimal `json:"leave_deduction"`
	LateDeduction            decimal.Decimal `json:"late_deduction"`
	UnapprovedLeaveDeduction decimal.Decimal `json:"unapproved_leave_deduction"`
	LunchAddition            decimal.Decimal `json:"lunch_addition"`
	SundayAddition           decimal.Decimal `json:"sunday_addition"`

	TotalPayable decimal.Decimal `json:"total_payable"`
}

// ComputeRow derives one staff member's salary for the month covered by
// [monthStart, monthEnd]. It is a pure function: same inputs, same row.
// Records with unparsable check-in times never count as late, and duplicate
// attendance records are collapsed to the earliest check-in first.
func ComputeRow(
	cfg Config,
	st StaffInput,
	shift ShiftConfig,
	records []attendance.Attendance,
	unapprovedLeaves []leave.LeaveRequest,
	monthStart, monthEnd time.Time,
) SalaryRow {
	row := SalaryRow{
		StaffEmail: st.Email,
		StaffName:  st.FullName,
		BaseSalary: st.BaseSalary,
	}

	shiftMinutes, shiftOK := attendance.CheckInMinutes(&shift.ShiftStart)
	lateAfter := shiftMinutes + shift.LateGraceMin

	for day, rec := range attendance.DedupByEarliestCheckIn(records) {
		if !rec.Present {
			continue
		}
		row.DaysPresent++

		if d, err := time.Parse("2006-01-02", day); err == nil && d.Weekday() == time.Sunday {
			row.SundaysPresent++
		}

		if shiftOK {
			if m, ok := attendance.CheckInMinutes(rec.CheckIn); ok && m > lateAfter {
				row.LateCount++
			}
		}
	}

	row.Absences = cfg.AssumedWorkingDays - row.DaysPresent
	if row.Absences < 0 {
		row.Absences = 0
	}
	row.ExcessLeaves = row.Absences - st.LeaveDayAllowance
	if row.ExcessLeaves < 0 {
		row.ExcessLeaves = 0
	}
	row.UnapprovedLeaveDays = unapprovedLeaveDays(unapprovedLeaves, monthStart, monthEnd)

	perDay := st.BaseSalary.Div(decimal.NewFromInt(cfg.SalaryDivisorDays))

	row.LeaveDeduction = perDay.Mul(decimal.NewFromInt(int64(row.ExcessLeaves)))
	row.LateDeduction = shift.LatePenalty.Mul(decimal.NewFromInt(int64(row.LateCount)))
	row.UnapprovedLeaveDeduction = cfg.UnapprovedLeaveFine.Mul(decimal.NewFromInt(int64(row.UnapprovedLeaveDays)))
	row.LunchAddition = st.LunchAllowance.Mul(decimal.NewFromInt(int64(row.DaysPresent)))
	row.SundayAddition = st.ExtraSundayAllowance.Mul(decimal.NewFromInt(int64(row.SundaysPresent)))

	total := st.BaseSalary.
		Sub(row.LeaveDeduction).
		Sub(row.LateDeduction).
		Sub(row.UnapprovedLeaveDeduction).
		Add(row.LunchAddition).
		Add(row.SundayAddition)
	if total.IsNegative() {
		total = decimal.Zero
	}
	row.TotalPayable = total

	return row
}

// unapprovedLeaveDays sums the calendar days each request contributes after
// clipping its range to the month. Ranges are inclusive on both ends.
func unapprovedLeaveDays(leaves []leave.LeaveRequest, monthStart, monthEnd time.Time) int {
	days := 0
	for _, l := range leaves {
		from := l.FromDate
		if from.Before(monthStart) {
			from = monthStart
		}
		to := l.ToDate
		if to.After(monthEnd) {
			to = monthEnd
		}
		if to.Before(from) {
			continue
		}
		days += int(to.Sub(from).Hours()/24) + 1
	}
	return days
}
