package expense

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	expenseerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/expense/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorEmail string, req CreateExpenseRequest) (ExpenseResponse, error)
	GetAllByStore(ctx context.Context, storeID string) ([]ExpenseResponse, error)
	Approve(ctx context.Context, actorEmail, id string) (ExpenseResponse, error)
	Reject(ctx context.Context, actorEmail, id string) (ExpenseResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorEmail string, req CreateExpenseRequest) (ExpenseResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create expense begin tx failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return ExpenseResponse{}, expenseerrors.ErrInvalidAmount
	}

	row := &OtherExpense{
		ID:          uuid.New(),
		StoreID:     uuid.MustParse(req.StoreID),
		Date:        date,
		Category:    req.Category,
		Amount:      amount,
		Note:        req.Note,
		Status:      StatusPending,
		RequestedBy: strings.ToLower(actorEmail),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create expense persist failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}
	s.logger.Info("create expense success",
		zap.String("expense_id", row.ID.String()),
		zap.String("store_id", req.StoreID),
		zap.String("amount", amount.StringFixed(2)),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAllByStore(ctx context.Context, storeID string) ([]ExpenseResponse, error) {
	rows, err := s.repo.FindAllByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	resp := make([]ExpenseResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, actorEmail, id string) (ExpenseResponse, error) {
	return s.transition(ctx, actorEmail, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorEmail, id string) (ExpenseResponse, error) {
	return s.transition(ctx, actorEmail, id, StatusRejected)
}

func (s *service) transition(ctx context.Context, actorEmail, id, targetStatus string) (ExpenseResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}
	if row.Status != StatusPending {
		return ExpenseResponse{}, expenseerrors.ErrInvalidStatusTransition
	}

	actor := strings.ToLower(actorEmail)
	row.Status = targetStatus
	if targetStatus == StatusApproved {
		row.ApprovedBy = &actor
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("transition expense persist failed",
			zap.String("expense_id", id),
			zap.Error(err),
		)
		return ExpenseResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}
	s.logger.Info("transition expense success",
		zap.String("expense_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*row), nil
}

func mapToResponse(e OtherExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		StoreID:     e.StoreID.String(),
		Date:        e.Date.Format("2006-01-02"),
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
		Note:        e.Note,
		Status:      e.Status,
		RequestedBy: e.RequestedBy,
		ApprovedBy:  e.ApprovedBy,
	}
}
