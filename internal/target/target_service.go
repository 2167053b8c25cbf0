package target

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/attendance"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
	targeterrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/target/errors"
)

type Service interface {
	Set(ctx context.Context, req SetTargetRequest, setBy string) (*TargetResponse, error)
	GetAllByStoreAndMonth(ctx context.Context, storeID, month string) ([]TargetResponse, error)
	AchievementForMonth(ctx context.Context, staffEmail, month string) (*AchievementResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	attendances attendance.Repository
	logger      *zap.Logger
}

func NewService(repo Repository, attendances attendance.Repository, logger ...*zap.Logger) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("target.service")
	}
	return &service{repo: repo, attendances: attendances, logger: l}
}

func (s *service) Set(ctx context.Context, req SetTargetRequest, setBy string) (*TargetResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, targeterrors.ErrInvalidAmount
	}

	t := &Target{
		StoreID:    req.StoreID,
		StaffEmail: req.StaffEmail,
		Month:      req.Month,
		Amount:     req.Amount,
		SetBy:      setBy,
	}

	if err := s.repo.Upsert(ctx, t); err != nil {
		s.logger.Error("failed to set target",
			zap.String("staff_email", req.StaffEmail),
			zap.String("month", req.Month),
			zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to set target", http.StatusInternalServerError)
	}

	s.logger.Info("target set",
		zap.String("staff_email", req.StaffEmail),
		zap.String("month", req.Month),
		zap.String("amount", req.Amount.String()))

	resp := ToTargetResponse(t)
	return &resp, nil
}

func (s *service) GetAllByStoreAndMonth(ctx context.Context, storeID, month string) ([]TargetResponse, error) {
	targets, err := s.repo.FindAllByStoreAndMonth(ctx, storeID, month)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list targets", http.StatusInternalServerError)
	}
	out := make([]TargetResponse, 0, len(targets))
	for i := range targets {
		out = append(out, ToTargetResponse(&targets[i]))
	}
	return out, nil
}

// AchievementForMonth compares the staff member's reported sales for the
// month against the target. Sales come from the daily check-in answers;
// days without a report contribute zero.
func (s *service) AchievementForMonth(ctx context.Context, staffEmail, month string) (*AchievementResponse, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidInput, "month must be in YYYY-MM format", http.StatusBadRequest)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	t, err := s.repo.FindByStaffAndMonth(ctx, staffEmail, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, targeterrors.ErrTargetNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load target", http.StatusInternalServerError)
	}

	records, err := s.attendances.FindByStaffAndRange(ctx, staffEmail, monthStart, monthEnd)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load attendance", http.StatusInternalServerError)
	}

	achieved := decimal.Zero
	for _, rec := range attendance.DedupByEarliestCheckIn(records) {
		achieved = achieved.Add(rec.Answers.YesterdaySale)
	}

	percent := decimal.Zero
	if t.Amount.IsPositive() {
		percent = achieved.Div(t.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &AchievementResponse{
		StaffEmail: staffEmail,
		Month:      month,
		Target:     t.Amount,
		Achieved:   achieved,
		Percent:    percent,
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete target", http.StatusInternalServerError)
	}
	return nil
}
