package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	attendanceerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	createFn              func(ctx context.Context, a *attendance.Attendance) error
	findByStaffAndDateFn  func(ctx context.Context, staffEmail string, date time.Time) (*attendance.Attendance, error)
	findByStaffAndRangeFn func(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.Attendance, error)
	findLeaveSpansFn      func(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.LeaveSpan, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByStaffAndDate(ctx context.Context, staffEmail string, date time.Time) (*attendance.Attendance, error) {
	if f.findByStaffAndDateFn != nil {
		return f.findByStaffAndDateFn(ctx, staffEmail, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByStaffAndRange(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.Attendance, error) {
	if f.findByStaffAndRangeFn != nil {
		return f.findByStaffAndRangeFn(ctx, staffEmail, from, to)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByStoreAndRange(ctx context.Context, storeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) FindApprovedLeaveSpans(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.LeaveSpan, error) {
	if f.findLeaveSpansFn != nil {
		return f.findLeaveSpansFn(ctx, staffEmail, from, to)
	}
	return nil, nil
}

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	return &attendanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: attendance.NewService(db, repo),
		repo:    repo,
	}
}

func present() *bool {
	v := true
	return &v
}

func TestAttendanceService_Mark(t *testing.T) {
	storeID := uuid.NewString()

	t.Run("creates the day's record", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *attendance.Attendance
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		resp, err := deps.service.Mark(context.Background(), "Ravi@Example.com", storeID, attendance.MarkAttendanceRequest{
			Date:          "2025-03-10",
			Present:       present(),
			CheckIn:       "10:05",
			YesterdaySale: "4500",
			UniformOK:     true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "ravi@example.com", created.StaffEmail)
		assert.Equal(t, "10:05", *created.CheckIn)
		assert.True(t, created.Answers.UniformOK)
		assert.Equal(t, "4500.00", resp.YesterdaySale)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("one record per staff per day", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByStaffAndDateFn = func(ctx context.Context, staffEmail string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{StaffEmail: staffEmail, Date: date}, nil
		}

		_, err := deps.service.Mark(context.Background(), "ravi@example.com", storeID, attendance.MarkAttendanceRequest{
			Date:    "2025-03-10",
			Present: present(),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarked)
	})

	t.Run("duplicate insert race maps to the same conflict", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			return &pgconn.PgError{Code: "23505"}
		}

		_, err := deps.service.Mark(context.Background(), "ravi@example.com", storeID, attendance.MarkAttendanceRequest{
			Date:    "2025-03-10",
			Present: present(),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarked)
	})

	t.Run("rejects a malformed check-in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Mark(context.Background(), "ravi@example.com", storeID, attendance.MarkAttendanceRequest{
			Date:    "2025-03-10",
			Present: present(),
			CheckIn: "25:99",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCheckIn)
	})

	t.Run("rejects a negative sale figure", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Mark(context.Background(), "ravi@example.com", storeID, attendance.MarkAttendanceRequest{
			Date:          "2025-03-10",
			Present:       present(),
			YesterdaySale: "-500",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAmount)
	})

	t.Run("requires a store assignment", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Mark(context.Background(), "ravi@example.com", "", attendance.MarkAttendanceRequest{
			Date:    "2025-03-10",
			Present: present(),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrMissingStore)
	})
}

func TestGetMonthlySummary(t *testing.T) {
	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByStaffAndRangeFn = func(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.Attendance, error) {
		assert.Equal(t, "ravi@example.com", staffEmail)
		return []attendance.Attendance{
			{Date: day("2025-03-03"), Present: true, CheckIn: checkIn("10:00")},
			{Date: day("2025-03-04"), Present: false},
		}, nil
	}
	deps.repo.findLeaveSpansFn = func(ctx context.Context, staffEmail string, from, to time.Time) ([]attendance.LeaveSpan, error) {
		return []attendance.LeaveSpan{{From: day("2025-03-05"), To: day("2025-03-06")}}, nil
	}

	resp, err := deps.service.GetMonthlySummary(context.Background(), "Ravi@Example.com", "2025-03")

	assert.NoError(t, err)
	assert.Equal(t, 31, resp.DaysInMonth)
	assert.Equal(t, 1, resp.Present)
	assert.Equal(t, 1, resp.Absent)
	assert.Equal(t, 2, resp.LeaveDays)
	assert.Equal(t, "present", resp.Days["2025-03-03"])
	assert.Equal(t, "leave", resp.Days["2025-03-05"])
	// The check-in average only looks at a recent window; these fixed
	// past dates fall outside it.
	assert.Equal(t, "00:00", resp.AverageCheckIn)
}

func TestGetMonthlySummary_BadMonth(t *testing.T) {
	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetMonthlySummary(context.Background(), "ravi@example.com", "2025/03")

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat)
}
