package salaryrequest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	salaryrequesterrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/salaryrequest/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_request_service.go -destination=mock/salary_request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryRequestResponse, error)
	GetAllByStore(ctx context.Context, storeID string) ([]SalaryRequestResponse, error)
	Approve(ctx context.Context, actorEmail, id string) (SalaryRequestResponse, error)
	Reject(ctx context.Context, actorEmail, id string) (SalaryRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryrequest.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary request begin tx failed", zap.Error(err))
		return SalaryRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return SalaryRequestResponse{}, salaryrequesterrors.ErrInvalidDateFormat
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return SalaryRequestResponse{}, salaryrequesterrors.ErrInvalidAmount
	}

	row := &SalaryRequest{
		ID:          uuid.New(),
		StoreID:     uuid.MustParse(req.StoreID),
		StaffEmail:  strings.ToLower(req.StaffEmail),
		StaffName:   req.StaffName,
		Amount:      amount,
		PaymentDate: paymentDate,
		Status:      StatusPending,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create salary request persist failed", zap.Error(err))
		return SalaryRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryRequestResponse{}, err
	}
	s.logger.Info("create salary request success",
		zap.String("request_id", row.ID.String()),
		zap.String("staff_email", row.StaffEmail),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAllByStore(ctx context.Context, storeID string) ([]SalaryRequestResponse, error) {
	rows, err := s.repo.FindAllByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	resp := make([]SalaryRequestResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, actorEmail, id string) (SalaryRequestResponse, error) {
	return s.transition(ctx, actorEmail, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorEmail, id string) (SalaryRequestResponse, error) {
	return s.transition(ctx, actorEmail, id, StatusRejected)
}

func (s *service) transition(ctx context.Context, actorEmail, id, targetStatus string) (SalaryRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRequestResponse{}, salaryrequesterrors.ErrRequestNotFound
		}
		return SalaryRequestResponse{}, err
	}
	if row.Status != StatusPending {
		return SalaryRequestResponse{}, salaryrequesterrors.ErrInvalidStatusTransition
	}

	actor := strings.ToLower(actorEmail)
	row.Status = targetStatus
	if targetStatus == StatusApproved {
		row.ApprovedBy = &actor
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("transition salary request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return SalaryRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryRequestResponse{}, err
	}
	s.logger.Info("transition salary request success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*row), nil
}

func mapToResponse(r SalaryRequest) SalaryRequestResponse {
	return SalaryRequestResponse{
		ID:          r.ID.String(),
		StoreID:     r.StoreID.String(),
		StaffEmail:  r.StaffEmail,
		StaffName:   r.StaffName,
		Amount:      r.Amount.StringFixed(2),
		PaymentDate: r.PaymentDate.Format("2006-01-02"),
		Status:      r.Status,
		ApprovedBy:  r.ApprovedBy,
	}
}
