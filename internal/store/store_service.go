package store

import (
	"context"
	"database/sql"
	"regexp"

	storeerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var shiftStartPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

//go:generate mockgen -source=store_service.go -destination=mock/store_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStoreRequest) (StoreResponse, error)
	GetAll(ctx context.Context) ([]StoreResponse, error)
	GetByID(ctx context.Context, id string) (StoreResponse, error)
	Update(ctx context.Context, id string, req UpdateStoreRequest) (StoreResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("store.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateStoreRequest) (StoreResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create store begin tx failed", zap.Error(err))
		return StoreResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if !shiftStartPattern.MatchString(req.ShiftStart) {
		return StoreResponse{}, storeerrors.ErrInvalidShiftStart
	}

	penalty, err := parsePenalty(req.LatePenalty)
	if err != nil {
		return StoreResponse{}, err
	}

	row := &Store{
		Code:         req.Code,
		Brand:        req.Brand,
		Name:         req.Name,
		City:         req.City,
		ShiftStart:   req.ShiftStart,
		LateGraceMin: req.LateGraceMin,
		LatePenalty:  penalty,
		Active:       true,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create store persist failed", zap.Error(err))
		return StoreResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StoreResponse{}, err
	}
	s.logger.Info("create store success",
		zap.String("store_id", row.ID.String()),
		zap.String("code", row.Code),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]StoreResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]StoreResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StoreResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StoreResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStoreRequest) (StoreResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StoreResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StoreResponse{}, mapRepositoryError(err)
	}

	if !shiftStartPattern.MatchString(req.ShiftStart) {
		return StoreResponse{}, storeerrors.ErrInvalidShiftStart
	}
	penalty, err := parsePenalty(req.LatePenalty)
	if err != nil {
		return StoreResponse{}, err
	}

	row.Brand = req.Brand
	row.Name = req.Name
	row.City = req.City
	row.ShiftStart = req.ShiftStart
	row.LateGraceMin = req.LateGraceMin
	row.LatePenalty = penalty
	if req.Active != nil {
		row.Active = *req.Active
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update store persist failed", zap.String("store_id", id), zap.Error(err))
		return StoreResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StoreResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func parsePenalty(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, storeerrors.ErrInvalidLatePenalty
	}
	return d, nil
}

func mapToResponse(s Store) StoreResponse {
	return StoreResponse{
		ID:           s.ID.String(),
		Code:         s.Code,
		Brand:        s.Brand,
		Name:         s.Name,
		City:         s.City,
		ShiftStart:   s.ShiftStart,
		LateGraceMin: s.LateGraceMin,
		LatePenalty:  s.LatePenalty.StringFixed(2),
		Active:       s.Active,
	}
}
