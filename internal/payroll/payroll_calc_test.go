package payroll_test

import (
	"testing"
	"time"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/leave"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func checkIn(s string) *string {
	return &s
}

func presentDays(from string, n int, in string) []attendance.Attendance {
	start := day(from)
	records := make([]attendance.Attendance, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, attendance.Attendance{
			Date:    start.AddDate(0, 0, i),
			Present: true,
			CheckIn: checkIn(in),
		})
	}
	return records
}

var (
	monthStart = day("2025-03-01")
	monthEnd   = day("2025-03-31")

	defaultShift = payroll.ShiftConfig{
		ShiftStart:   "10:00",
		LateGraceMin: 15,
		LatePenalty:  decimal.NewFromInt(50),
	}
)

func baseStaff() payroll.StaffInput {
	return payroll.StaffInput{
		Email:             "ravi@example.com",
		FullName:          "Ravi Kumar",
		BaseSalary:        decimal.NewFromInt(30000),
		LeaveDayAllowance: 2,
	}
}

func TestComputeRow_TypicalMonth(t *testing.T) {
	// 25 on-time days starting March 1st.
	records := presentDays("2025-03-01", 25, "10:05")

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 25, row.DaysPresent)
	assert.Equal(t, 5, row.Absences)
	assert.Equal(t, 3, row.ExcessLeaves)
	assert.Equal(t, 0, row.LateCount)
	// March 2025 Sundays: 2nd, 9th, 16th, 23rd; the run covers all but the 30th.
	assert.Equal(t, 4, row.SundaysPresent)

	// 30000/30 per day, 3 excess leaves.
	assert.True(t, row.LeaveDeduction.Equal(decimal.NewFromInt(3000)), "leave deduction %s", row.LeaveDeduction)
	assert.True(t, row.TotalPayable.Equal(decimal.NewFromInt(27000)), "total %s", row.TotalPayable)
}

func TestComputeRow_FullMonthNoDeductions(t *testing.T) {
	records := presentDays("2025-03-01", 30, "09:55")

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 30, row.DaysPresent)
	assert.Equal(t, 0, row.Absences)
	assert.Equal(t, 0, row.ExcessLeaves)
	assert.True(t, row.TotalPayable.Equal(decimal.NewFromInt(30000)))
}

func TestComputeRow_AbsencesWithinAllowance(t *testing.T) {
	records := presentDays("2025-03-01", 28, "10:00")

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 2, row.Absences)
	assert.Equal(t, 0, row.ExcessLeaves)
	assert.True(t, row.LeaveDeduction.IsZero())
}

func TestComputeRow_LateGraceBoundary(t *testing.T) {
	cases := []struct {
		name string
		in   string
		late int
	}{
		{"on the shift start", "10:00", 0},
		{"last grace minute", "10:15", 0},
		{"one minute past grace", "10:16", 1},
		{"unparsable time never late", "late!", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := []attendance.Attendance{
				{Date: day("2025-03-03"), Present: true, CheckIn: checkIn(tc.in)},
			}
			row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)
			assert.Equal(t, tc.late, row.LateCount)
		})
	}
}

func TestComputeRow_LatePenaltyApplied(t *testing.T) {
	records := []attendance.Attendance{
		{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("10:30")},
		{Date: day("2025-03-04"), Present: true, CheckIn: checkIn("11:00")},
		{Date: day("2025-03-05"), Present: true, CheckIn: checkIn("10:10")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 2, row.LateCount)
	assert.True(t, row.LateDeduction.Equal(decimal.NewFromInt(100)))
}

func TestComputeRow_UnconfiguredShiftNeverLate(t *testing.T) {
	shift := payroll.ShiftConfig{ShiftStart: "", LatePenalty: decimal.NewFromInt(50)}
	records := []attendance.Attendance{
		{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("23:00")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), shift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 0, row.LateCount)
}

func TestComputeRow_UnapprovedLeaveFine(t *testing.T) {
	leaves := []leave.LeaveRequest{
		{FromDate: day("2025-03-10"), ToDate: day("2025-03-12")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, nil, leaves, monthStart, monthEnd)

	assert.Equal(t, 3, row.UnapprovedLeaveDays)
	assert.True(t, row.UnapprovedLeaveDeduction.Equal(decimal.NewFromInt(600)))
}

func TestComputeRow_UnapprovedLeaveClippedToMonth(t *testing.T) {
	leaves := []leave.LeaveRequest{
		// Starts in February, ends March 2nd: only two March days count.
		{FromDate: day("2025-02-25"), ToDate: day("2025-03-02")},
		// Runs past the month end: only the 30th and 31st count.
		{FromDate: day("2025-03-30"), ToDate: day("2025-04-05")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, nil, leaves, monthStart, monthEnd)

	assert.Equal(t, 4, row.UnapprovedLeaveDays)
}

func TestComputeRow_SingleDayLeaveCountsOne(t *testing.T) {
	leaves := []leave.LeaveRequest{
		{FromDate: day("2025-03-10"), ToDate: day("2025-03-10")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, nil, leaves, monthStart, monthEnd)

	assert.Equal(t, 1, row.UnapprovedLeaveDays)
}

func TestComputeRow_Allowances(t *testing.T) {
	st := baseStaff()
	st.LunchAllowance = decimal.NewFromInt(40)
	st.ExtraSundayAllowance = decimal.NewFromInt(300)

	// Presence on two Sundays and one weekday.
	records := []attendance.Attendance{
		{Date: day("2025-03-02"), Present: true, CheckIn: checkIn("10:00")},
		{Date: day("2025-03-09"), Present: true, CheckIn: checkIn("10:00")},
		{Date: day("2025-03-11"), Present: true, CheckIn: checkIn("10:00")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), st, defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 2, row.SundaysPresent)
	assert.True(t, row.LunchAddition.Equal(decimal.NewFromInt(120)))
	assert.True(t, row.SundayAddition.Equal(decimal.NewFromInt(600)))
}

func TestComputeRow_TotalNeverNegative(t *testing.T) {
	st := baseStaff()
	st.BaseSalary = decimal.NewFromInt(1000)
	st.LeaveDayAllowance = 0

	leaves := []leave.LeaveRequest{
		{FromDate: day("2025-03-01"), ToDate: day("2025-03-31")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), st, defaultShift, nil, leaves, monthStart, monthEnd)

	// 1000 base against a full month of absences and fines.
	assert.True(t, row.TotalPayable.IsZero(), "total %s", row.TotalPayable)
}

func TestComputeRow_DuplicateRecordsCollapsed(t *testing.T) {
	records := []attendance.Attendance{
		{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("10:40")},
		{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("10:05")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 1, row.DaysPresent)
	// The earliest check-in wins, and 10:05 is within grace.
	assert.Equal(t, 0, row.LateCount)
}

func TestComputeRow_AbsentRecordsDoNotCount(t *testing.T) {
	records := []attendance.Attendance{
		{Date: day("2025-03-03"), Present: false, CheckIn: checkIn("10:00")},
	}

	row := payroll.ComputeRow(payroll.DefaultConfig(), baseStaff(), defaultShift, records, nil, monthStart, monthEnd)

	assert.Equal(t, 0, row.DaysPresent)
	assert.Equal(t, 30, row.Absences)
}

func TestComputeRow_MorePresenceNeverPaysLess(t *testing.T) {
	cfg := payroll.DefaultConfig()
	st := baseStaff()

	prev := decimal.NewFromInt(-1)
	for n := 0; n <= 30; n++ {
		row := payroll.ComputeRow(cfg, st, defaultShift, presentDays("2025-03-01", n, "10:00"), nil, monthStart, monthEnd)
		assert.True(t, row.TotalPayable.GreaterThanOrEqual(prev),
			"total dropped from %s to %s at %d present days", prev, row.TotalPayable, n)
		prev = row.TotalPayable
	}
}
