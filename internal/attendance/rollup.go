package attendance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Day classification. All rollup functions in this file are pure and total:
// malformed times and missing answers contribute zero, never an error.
type DayStatus string

const (
	DayLeave   DayStatus = "leave"
	DayPresent DayStatus = "present"
	DayAbsent  DayStatus = "absent"
	DayFuture  DayStatus = "future"
	DayNoData  DayStatus = "no-data"
)

// LeaveSpan is an approved leave window, inclusive on both ends.
type LeaveSpan struct {
	From time.Time
	To   time.Time
}

func (s LeaveSpan) Contains(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(s.From)) && !d.After(dateOnly(s.To))
}

// ClassifyDay resolves the status of one calendar day. Approved leave wins
// over an attendance record for the same day.
func ClassifyDay(day, today time.Time, rec *Attendance, leaves []LeaveSpan) DayStatus {
	for _, span := range leaves {
		if span.Contains(day) {
			return DayLeave
		}
	}
	if rec != nil {
		if rec.Present {
			return DayPresent
		}
		return DayAbsent
	}
	if dateOnly(day).After(dateOnly(today)) {
		return DayFuture
	}
	return DayNoData
}

// DedupByEarliestCheckIn collapses duplicate records for the same day,
// keeping the one with the earliest parsable check-in. Legacy data contains
// duplicates even though writes now enforce uniqueness.
func DedupByEarliestCheckIn(records []Attendance) map[string]Attendance {
	byDate := make(map[string]Attendance, len(records))
	for _, rec := range records {
		key := rec.Date.Format("2006-01-02")
		existing, ok := byDate[key]
		if !ok {
			byDate[key] = rec
			continue
		}
		if checkInBefore(rec.CheckIn, existing.CheckIn) {
			byDate[key] = rec
		}
	}
	return byDate
}

// checkInBefore reports whether a beats b as the earliest check-in. A record
// without a parsable time never displaces one that has it.
func checkInBefore(a, b *string) bool {
	am, aok := CheckInMinutes(a)
	bm, bok := CheckInMinutes(b)
	if !aok {
		return false
	}
	if !bok {
		return true
	}
	return am < bm
}

// CheckInMinutes converts an "HH:MM" value to minutes since midnight.
func CheckInMinutes(v *string) (int, bool) {
	if v == nil {
		return 0, false
	}
	parts := strings.Split(strings.TrimSpace(*v), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

type MonthlySummary struct {
	Year  int
	Month time.Month

	DaysInMonth int
	Present     int
	Absent      int
	LeaveDays   int
	Future      int
	NoData      int

	UniformCompliant int
	ShoesCompliant   int
	TotalSale        decimal.Decimal
	TotalTarget      decimal.Decimal
	GoogleReviews    int
	CustomerUpdates  int

	Days map[string]DayStatus
}

// Rollup classifies every calendar day of the month and aggregates the
// questionnaire counters over present days.
func Rollup(year int, month time.Month, today time.Time, records []Attendance, leaves []LeaveSpan) MonthlySummary {
	byDate := DedupByEarliestCheckIn(records)

	summary := MonthlySummary{
		Year:        year,
		Month:       month,
		DaysInMonth: daysInMonth(year, month),
		TotalSale:   decimal.Zero,
		TotalTarget: decimal.Zero,
		Days:        make(map[string]DayStatus),
	}

	for d := 1; d <= summary.DaysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		key := day.Format("2006-01-02")

		var rec *Attendance
		if r, ok := byDate[key]; ok {
			rec = &r
		}

		status := ClassifyDay(day, today, rec, leaves)
		summary.Days[key] = status

		switch status {
		case DayPresent:
			summary.Present++
			summary.TotalSale = summary.TotalSale.Add(rec.Answers.YesterdaySale)
			summary.TotalTarget = summary.TotalTarget.Add(rec.Answers.TodayTarget)
			summary.GoogleReviews += rec.Answers.GoogleReviews
			summary.CustomerUpdates += rec.Answers.CustomerUpdates
			if rec.Answers.UniformOK {
				summary.UniformCompliant++
			}
			if rec.Answers.ShoesOK {
				summary.ShoesCompliant++
			}
		case DayAbsent:
			summary.Absent++
		case DayLeave:
			summary.LeaveDays++
		case DayFuture:
			summary.Future++
		case DayNoData:
			summary.NoData++
		}
	}

	return summary
}

// AverageCheckIn averages the check-in times of present days within the
// lookback window ending at today. Returns "00:00" when no valid check-in
// exists.
func AverageCheckIn(records []Attendance, today time.Time, lookbackDays int) string {
	cutoff := dateOnly(today).AddDate(0, 0, -lookbackDays)

	var total, count int
	for _, rec := range records {
		if !rec.Present || dateOnly(rec.Date).Before(cutoff) {
			continue
		}
		if m, ok := CheckInMinutes(rec.CheckIn); ok {
			total += m
			count++
		}
	}
	if count == 0 {
		return "00:00"
	}

	avg := total / count
	return fmt.Sprintf("%02d:%02d", avg/60, avg%60)
}

// SortedDayKeys returns the summary's day keys in calendar order, for
// deterministic serialization.
func (s MonthlySummary) SortedDayKeys() []string {
	keys := make([]string, 0, len(s.Days))
	for k := range s.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
