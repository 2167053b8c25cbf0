package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/leave"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/staff"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store"
	storeerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/errors"
)

const payrollCacheTTL = 5 * time.Minute

type Service interface {
	ComputeMonth(ctx context.Context, storeID, month string) ([]SalaryRow, error)
	ComputeForStaff(ctx context.Context, staffEmail, month string) (*SalaryRow, error)
}

type service struct {
	cfg         Config
	storeRepo   store.Repository
	staffRepo   staff.Repository
	attendances attendance.Repository
	leaves      leave.Repository
	rdb         *redis.Client
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(
	cfg Config,
	storeRepo store.Repository,
	staffRepo staff.Repository,
	attendances attendance.Repository,
	leaves leave.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("payroll.service")
	}
	return &service{
		cfg:         cfg,
		storeRepo:   storeRepo,
		staffRepo:   staffRepo,
		attendances: attendances,
		leaves:      leaves,
		rdb:         rdb,
		logger:      l,
	}
}

func monthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.New(apperror.CodeInvalidInput, "month must be in YYYY-MM format", http.StatusBadRequest)
	}
	return start, start.AddDate(0, 1, -1), nil
}

// ComputeMonth builds one salary row per staff member assigned to the
// store. Results are cached briefly and concurrent identical requests are
// collapsed into one computation; the numbers themselves always come from
// a fresh read of the source records.
func (s *service) ComputeMonth(ctx context.Context, storeID, month string) ([]SalaryRow, error) {
	monthStart, monthEnd, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("payroll:%s:%s", storeID, month)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var rows []SalaryRow
			if err := json.Unmarshal(raw, &rows); err == nil {
				s.logger.Debug("payroll cache hit", zap.String("key", cacheKey))
				return rows, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payroll cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.computeMonth(ctx, storeID, monthStart, monthEnd)
	})
	if err != nil {
		return nil, err
	}
	rows := v.([]SalaryRow)

	if s.rdb != nil {
		if raw, err := json.Marshal(rows); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, payrollCacheTTL).Err(); err != nil {
				s.logger.Warn("payroll cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return rows, nil
}

func (s *service) computeMonth(ctx context.Context, storeID string, monthStart, monthEnd time.Time) ([]SalaryRow, error) {
	st, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeerrors.ErrStoreNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load store", http.StatusInternalServerError)
	}

	members, err := s.staffRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load staff", http.StatusInternalServerError)
	}

	shift := ShiftConfig{
		ShiftStart:   st.ShiftStart,
		LateGraceMin: st.LateGraceMin,
		LatePenalty:  st.LatePenalty,
	}

	rows := make([]SalaryRow, 0, len(members))
	for _, m := range members {
		row, err := s.computeRow(ctx, storeID, m, shift, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}

	s.logger.Debug("payroll computed",
		zap.String("store_id", storeID),
		zap.String("month", monthStart.Format("2006-01")),
		zap.Int("staff", len(rows)))

	return rows, nil
}

func (s *service) computeRow(ctx context.Context, storeID string, m staff.Staff, shift ShiftConfig, monthStart, monthEnd time.Time) (*SalaryRow, error) {
	records, err := s.attendances.FindByStaffAndRange(ctx, m.Email, monthStart, monthEnd)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load attendance", http.StatusInternalServerError)
	}

	unapproved, err := s.leaves.FindUnapprovedOverlapping(ctx, storeID, m.Email, monthStart, monthEnd)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load leave requests", http.StatusInternalServerError)
	}

	row := ComputeRow(s.cfg, StaffInput{
		Email:                m.Email,
		FullName:             m.FullName,
		BaseSalary:           m.BaseSalary,
		LeaveDayAllowance:    m.LeaveDayAllowance,
		LunchAllowance:       m.LunchAllowance,
		ExtraSundayAllowance: m.ExtraSundayAllowance,
	}, shift, records, unapproved, monthStart, monthEnd)

	return &row, nil
}

func (s *service) ComputeForStaff(ctx context.Context, staffEmail, month string) (*SalaryRow, error) {
	monthStart, monthEnd, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	m, err := s.staffRepo.FindByEmail(ctx, staffEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "staff member not found", http.StatusNotFound)
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load staff", http.StatusInternalServerError)
	}
	if m.StoreID == nil {
		return nil, apperror.New(apperror.CodeInvalidState, "staff member is not assigned to a store", http.StatusUnprocessableEntity)
	}

	st, err := s.storeRepo.FindByID(ctx, m.StoreID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeerrors.ErrStoreNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load store", http.StatusInternalServerError)
	}

	return s.computeRow(ctx, m.StoreID.String(), *m, ShiftConfig{
		ShiftStart:   st.ShiftStart,
		LateGraceMin: st.LateGraceMin,
		LatePenalty:  st.LatePenalty,
	}, monthStart, monthEnd)
}
