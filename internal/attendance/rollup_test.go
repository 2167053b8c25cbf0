package attendance_test

import (
	"testing"
	"time"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"

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

func TestClassifyDay(t *testing.T) {
	today := day("2025-03-15")
	leaves := []attendance.LeaveSpan{{From: day("2025-03-10"), To: day("2025-03-12")}}

	cases := []struct {
		name string
		day  time.Time
		rec  *attendance.Attendance
		want attendance.DayStatus
	}{
		{"present record", day("2025-03-05"), &attendance.Attendance{Present: true}, attendance.DayPresent},
		{"explicit absent record", day("2025-03-05"), &attendance.Attendance{Present: false}, attendance.DayAbsent},
		{"leave wins over present record", day("2025-03-11"), &attendance.Attendance{Present: true}, attendance.DayLeave},
		{"leave boundary start", day("2025-03-10"), nil, attendance.DayLeave},
		{"leave boundary end", day("2025-03-12"), nil, attendance.DayLeave},
		{"day after leave", day("2025-03-13"), nil, attendance.DayNoData},
		{"future day", day("2025-03-20"), nil, attendance.DayFuture},
		{"today without record", day("2025-03-15"), nil, attendance.DayNoData},
		{"past day without record", day("2025-03-01"), nil, attendance.DayNoData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, attendance.ClassifyDay(tc.day, today, tc.rec, leaves))
		})
	}
}

func TestDedupByEarliestCheckIn(t *testing.T) {
	records := []attendance.Attendance{
		{Date: day("2025-03-05"), Present: true, CheckIn: checkIn("10:30")},
		{Date: day("2025-03-05"), Present: true, CheckIn: checkIn("09:45")},
		{Date: day("2025-03-05"), Present: true, CheckIn: checkIn("11:00")},
		{Date: day("2025-03-06"), Present: true, CheckIn: nil},
		{Date: day("2025-03-06"), Present: true, CheckIn: checkIn("10:05")},
	}

	byDate := attendance.DedupByEarliestCheckIn(records)

	assert.Len(t, byDate, 2)
	assert.Equal(t, "09:45", *byDate["2025-03-05"].CheckIn)
	// A parsable check-in displaces a nil one.
	assert.Equal(t, "10:05", *byDate["2025-03-06"].CheckIn)
}

func TestDedupByEarliestCheckIn_UnparsableNeverDisplaces(t *testing.T) {
	records := []attendance.Attendance{
		{Date: day("2025-03-05"), CheckIn: checkIn("10:30")},
		{Date: day("2025-03-05"), CheckIn: checkIn("garbage")},
	}

	byDate := attendance.DedupByEarliestCheckIn(records)

	assert.Equal(t, "10:30", *byDate["2025-03-05"].CheckIn)
}

func TestCheckInMinutes(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"10:00", 600, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{" 09:15 ", 555, true},
		{"24:00", 0, false},
		{"10:60", 0, false},
		{"10", 0, false},
		{"ten:five", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, ok := attendance.CheckInMinutes(&tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.minutes, m)
		})
	}

	_, ok := attendance.CheckInMinutes(nil)
	assert.False(t, ok)
}

func TestRollup(t *testing.T) {
	today := day("2025-03-15")
	records := []attendance.Attendance{
		{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("10:00"), Answers: attendance.DayAnswers{
			YesterdaySale: decimal.NewFromInt(5000),
			TodayTarget:   decimal.NewFromInt(6000),
			UniformOK:     true,
			ShoesOK:       true,
			GoogleReviews: 2,
		}},
		{Date: day("2025-03-04"), Present: true, CheckIn: checkIn("10:20"), Answers: attendance.DayAnswers{
			YesterdaySale:   decimal.NewFromInt(4500),
			CustomerUpdates: 3,
		}},
		{Date: day("2025-03-05"), Present: false},
	}
	leaves := []attendance.LeaveSpan{{From: day("2025-03-10"), To: day("2025-03-11")}}

	sum := attendance.Rollup(2025, time.March, today, records, leaves)

	assert.Equal(t, 31, sum.DaysInMonth)
	assert.Equal(t, 2, sum.Present)
	assert.Equal(t, 1, sum.Absent)
	assert.Equal(t, 2, sum.LeaveDays)
	assert.Equal(t, 16, sum.Future)
	// 31 days minus 2 present, 1 absent, 2 leave, 16 future.
	assert.Equal(t, 10, sum.NoData)

	assert.True(t, sum.TotalSale.Equal(decimal.NewFromInt(9500)))
	assert.True(t, sum.TotalTarget.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, 1, sum.UniformCompliant)
	assert.Equal(t, 1, sum.ShoesCompliant)
	assert.Equal(t, 2, sum.GoogleReviews)
	assert.Equal(t, 3, sum.CustomerUpdates)

	assert.Equal(t, attendance.DayPresent, sum.Days["2025-03-03"])
	assert.Equal(t, attendance.DayAbsent, sum.Days["2025-03-05"])
	assert.Equal(t, attendance.DayLeave, sum.Days["2025-03-10"])
	assert.Equal(t, attendance.DayFuture, sum.Days["2025-03-31"])
}

func TestRollup_EveryDayClassified(t *testing.T) {
	sum := attendance.Rollup(2025, time.February, day("2025-06-01"), nil, nil)

	assert.Equal(t, 28, sum.DaysInMonth)
	assert.Len(t, sum.Days, 28)
	assert.Equal(t, 28, sum.NoData)
	assert.Equal(t, 28, sum.Present+sum.Absent+sum.LeaveDays+sum.Future+sum.NoData)
}

func TestRollup_LeapFebruary(t *testing.T) {
	sum := attendance.Rollup(2024, time.February, day("2024-03-15"), nil, nil)

	assert.Equal(t, 29, sum.DaysInMonth)
}

func TestAverageCheckIn(t *testing.T) {
	today := day("2025-03-15")
	records := []attendance.Attendance{
		{Date: day("2025-03-10"), Present: true, CheckIn: checkIn("10:00")},
		{Date: day("2025-03-11"), Present: true, CheckIn: checkIn("10:30")},
		{Date: day("2025-03-12"), Present: true, CheckIn: checkIn("garbage")},
		{Date: day("2025-03-13"), Present: false, CheckIn: checkIn("09:00")},
		{Date: day("2025-01-01"), Present: true, CheckIn: checkIn("08:00")},
	}

	// Only the two parsable present check-ins in the window count.
	assert.Equal(t, "10:15", attendance.AverageCheckIn(records, today, 30))
}

func TestAverageCheckIn_NoValidRecords(t *testing.T) {
	assert.Equal(t, "00:00", attendance.AverageCheckIn(nil, day("2025-03-15"), 30))

	absentOnly := []attendance.Attendance{{Date: day("2025-03-10"), Present: false, CheckIn: checkIn("10:00")}}
	assert.Equal(t, "00:00", attendance.AverageCheckIn(absentOnly, day("2025-03-15"), 30))
}

func TestSortedDayKeys(t *testing.T) {
	sum := attendance.Rollup(2025, time.March, day("2025-03-15"), nil, nil)

	keys := sum.SortedDayKeys()
	assert.Len(t, keys, 31)
	assert.Equal(t, "2025-03-01", keys[0])
	assert.Equal(t, "2025-03-31", keys[30])
}
