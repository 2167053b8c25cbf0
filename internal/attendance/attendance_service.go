package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lookback window for the dashboard's average check-in time.
const avgCheckInLookbackDays = 30

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, staffEmail, storeID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetByStaffAndRange(ctx context.Context, staffEmail, from, to string) ([]AttendanceResponse, error)
	GetMonthlySummary(ctx context.Context, staffEmail, month string) (MonthlySummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) Mark(ctx context.Context, staffEmail, storeID string, req MarkAttendanceRequest) (AttendanceResponse, error) {
	s.logger.Debug("mark attendance requested",
		zap.String("staff_email", staffEmail),
		zap.String("date", req.Date),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if storeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrMissingStore
	}
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrMissingStore
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	var checkIn *string
	if req.CheckIn != "" {
		if _, ok := CheckInMinutes(&req.CheckIn); !ok {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidCheckIn
		}
		checkIn = &req.CheckIn
	}

	sale, err := parseAmount(req.YesterdaySale)
	if err != nil {
		return AttendanceResponse{}, err
	}
	target, err := parseAmount(req.TodayTarget)
	if err != nil {
		return AttendanceResponse{}, err
	}

	existing, err := qtx.FindByStaffAndDate(ctx, staffEmail, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyMarked
	}

	row := &Attendance{
		ID:         uuid.New(),
		StaffEmail: strings.ToLower(staffEmail),
		Date:       date,
		StoreID:    storeUUID,
		Present:    *req.Present,
		CheckIn:    checkIn,
		Answers: DayAnswers{
			YesterdaySale:   sale,
			TodayTarget:     target,
			UniformOK:       req.UniformOK,
			ShoesOK:         req.ShoesOK,
			GoogleReviews:   req.GoogleReviews,
			CustomerUpdates: req.CustomerUpdates,
		},
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("mark attendance success",
		zap.String("staff_email", row.StaffEmail),
		zap.String("date", req.Date),
		zap.Bool("present", row.Present),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetByStaffAndRange(ctx context.Context, staffEmail, from, to string) ([]AttendanceResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindByStaffAndRange(ctx, strings.ToLower(staffEmail), fromDate, toDate)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetMonthlySummary(ctx context.Context, staffEmail, month string) (MonthlySummaryResponse, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidMonthFormat
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	email := strings.ToLower(staffEmail)

	records, err := s.repo.FindByStaffAndRange(ctx, email, monthStart, monthEnd)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}
	leaves, err := s.repo.FindApprovedLeaveSpans(ctx, email, monthStart, monthEnd)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	today := s.now()
	summary := Rollup(monthStart.Year(), monthStart.Month(), today, records, leaves)

	days := make(map[string]string, len(summary.Days))
	for k, v := range summary.Days {
		days[k] = string(v)
	}

	return MonthlySummaryResponse{
		StaffEmail:       email,
		Month:            month,
		DaysInMonth:      summary.DaysInMonth,
		Present:          summary.Present,
		Absent:           summary.Absent,
		LeaveDays:        summary.LeaveDays,
		Future:           summary.Future,
		NoData:           summary.NoData,
		UniformCompliant: summary.UniformCompliant,
		ShoesCompliant:   summary.ShoesCompliant,
		TotalSale:        summary.TotalSale.StringFixed(2),
		TotalTarget:      summary.TotalTarget.StringFixed(2),
		GoogleReviews:    summary.GoogleReviews,
		CustomerUpdates:  summary.CustomerUpdates,
		AverageCheckIn:   AverageCheckIn(records, today, avgCheckInLookbackDays),
		Days:             days,
	}, nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, attendanceerrors.ErrInvalidAmount
	}
	return d, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyMarked
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrAlreadyMarked
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID.String(),
		StaffEmail:      a.StaffEmail,
		Date:            a.Date.Format("2006-01-02"),
		StoreID:         a.StoreID.String(),
		Present:         a.Present,
		CheckIn:         a.CheckIn,
		YesterdaySale:   a.Answers.YesterdaySale.StringFixed(2),
		TodayTarget:     a.Answers.TodayTarget.StringFixed(2),
		UniformOK:       a.Answers.UniformOK,
		ShoesOK:         a.Answers.ShoesOK,
		GoogleReviews:   a.Answers.GoogleReviews,
		CustomerUpdates: a.Answers.CustomerUpdates,
	}
}
