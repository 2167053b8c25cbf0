package staff

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	stafferrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context) ([]StaffResponse, error)
	GetByEmail(ctx context.Context, email string) (StaffResponse, error)
	GetByStore(ctx context.Context, storeID string) ([]StaffResponse, error)
	GetByStoreAndRole(ctx context.Context, storeID, role string) ([]StaffResponse, error)
	Update(ctx context.Context, email string, req UpdateStaffRequest) (StaffResponse, error)
	Deactivate(ctx context.Context, email string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	storeID, err := parseStoreID(req.StoreID)
	if err != nil {
		return StaffResponse{}, err
	}
	base, lunch, sunday, err := parseAllowances(req.BaseSalary, req.LunchAllowance, req.ExtraSundayAllowance)
	if err != nil {
		return StaffResponse{}, err
	}

	row := &Staff{
		// Email is the identity key across attendance and leave records.
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:             req.FullName,
		Role:                 req.Role,
		StoreID:              storeID,
		BaseSalary:           base,
		LeaveDayAllowance:    req.LeaveDayAllowance,
		LunchAllowance:       lunch,
		ExtraSundayAllowance: sunday,
		Active:               true,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StaffResponse{}, err
	}
	s.logger.Info("create staff success",
		zap.String("email", row.Email),
		zap.String("role", row.Role),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]StaffResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (StaffResponse, error) {
	row, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByStore(ctx context.Context, storeID string) ([]StaffResponse, error) {
	rows, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByStoreAndRole(ctx context.Context, storeID, role string) ([]StaffResponse, error) {
	rows, err := s.repo.FindByStoreAndRole(ctx, storeID, role)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Update(ctx context.Context, email string, req UpdateStaffRequest) (StaffResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	storeID, err := parseStoreID(req.StoreID)
	if err != nil {
		return StaffResponse{}, err
	}
	base, lunch, sunday, err := parseAllowances(req.BaseSalary, req.LunchAllowance, req.ExtraSundayAllowance)
	if err != nil {
		return StaffResponse{}, err
	}

	row.FullName = req.FullName
	row.Role = req.Role
	row.StoreID = storeID
	row.BaseSalary = base
	row.LeaveDayAllowance = req.LeaveDayAllowance
	row.LunchAllowance = lunch
	row.ExtraSundayAllowance = sunday
	if req.Active != nil {
		row.Active = *req.Active
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update staff persist failed", zap.String("email", email), zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StaffResponse{}, err
	}

	return mapToResponse(*row), nil
}

// Deactivate flips the status flag; profiles stay on record for payroll
// history.
func (s *service) Deactivate(ctx context.Context, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return mapRepositoryError(err)
	}
	row.Active = false

	if err := qtx.Update(ctx, row); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func parseStoreID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, stafferrors.ErrInvalidStoreID
	}
	return &id, nil
}

func parseAllowances(base, lunch, sunday string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	b, err := parseAmount(base)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	l, err := parseAmount(lunch)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	su, err := parseAmount(sunday)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return b, l, su, nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, stafferrors.ErrInvalidAmount
	}
	return d, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return stafferrors.ErrEmailTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return stafferrors.ErrEmailTaken
	}
	return err
}

func mapToResponse(s Staff) StaffResponse {
	resp := StaffResponse{
		ID:                   s.ID.String(),
		Email:                s.Email,
		FullName:             s.FullName,
		Role:                 s.Role,
		BaseSalary:           s.BaseSalary.StringFixed(2),
		LeaveDayAllowance:    s.LeaveDayAllowance,
		LunchAllowance:       s.LunchAllowance.StringFixed(2),
		ExtraSundayAllowance: s.ExtraSundayAllowance.StringFixed(2),
		Active:               s.Active,
	}
	if s.StoreID != nil {
		v := s.StoreID.String()
		resp.StoreID = &v
	}
	return resp
}

func mapToListResponse(rows []Staff) []StaffResponse {
	resp := make([]StaffResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
