package customer

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/events"
	ledgerdomain "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	GetByID(ctx context.Context, id string) (*CustomerResponse, error)
	GetAllByStore(ctx context.Context, storeID string) ([]CustomerResponse, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	ApplyRokarDues(ctx context.Context, event events.RokarEntrySavedEvent) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("customer.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	c := &Customer{
		StoreID: req.StoreID,
		Name:    req.Name,
		Mobile:  req.Mobile,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Warn("failed to create customer",
			zap.String("store_id", req.StoreID.String()),
			zap.String("mobile", req.Mobile),
			zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("customer created",
		zap.String("customer_id", c.ID.String()),
		zap.String("store_id", c.StoreID.String()))

	resp := ToCustomerResponse(c)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

func (s *service) GetAllByStore(ctx context.Context, storeID string) ([]CustomerResponse, error) {
	customers, err := s.repo.FindAllByStore(ctx, storeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, ToCustomerResponse(&customers[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Mobile != nil {
		c.Mobile = *req.Mobile
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := ToCustomerResponse(c)
	return &resp, nil
}

// ApplyRokarDues folds a saved ledger entry's credit lines into customer
// balances: credit given raises outstanding, repayments lower it. The entry
// key is claimed first, so redelivered events apply at most once.
func (s *service) ApplyRokarDues(ctx context.Context, event events.RokarEntrySavedEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to apply rokar dues", http.StatusInternalServerError)
	}
	defer func() { _ = tx.Rollback() }()

	txRepo := s.repo.WithTx(tx)

	claimed, err := txRepo.MarkEntryApplied(ctx, event.EntryKey)
	if err != nil {
		s.logger.Error("failed to claim rokar entry for dues application",
			zap.String("entry_key", event.EntryKey), zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to apply rokar dues", http.StatusInternalServerError)
	}
	if !claimed {
		s.logger.Debug("rokar entry dues already applied", zap.String("entry_key", event.EntryKey))
		return nil
	}

	for _, line := range event.DuesLines {
		if line.CustomerID == "" {
			continue
		}

		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			s.logger.Warn("skipping dues line with malformed amount",
				zap.String("entry_key", event.EntryKey),
				zap.String("customer_id", line.CustomerID),
				zap.String("amount", line.Amount))
			continue
		}

		delta := amount
		if line.Kind == ledgerdomain.DuesKindPaid {
			delta = amount.Neg()
		}

		if err := txRepo.AdjustOutstanding(ctx, line.CustomerID, delta); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("skipping dues line for unknown customer",
					zap.String("entry_key", event.EntryKey),
					zap.String("customer_id", line.CustomerID))
				continue
			}
			s.logger.Error("failed to adjust customer outstanding",
				zap.String("entry_key", event.EntryKey),
				zap.String("customer_id", line.CustomerID),
				zap.Error(err))
			return apperror.Wrap(err, apperror.CodeInternalError, "failed to apply rokar dues", http.StatusInternalServerError)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to apply rokar dues", http.StatusInternalServerError)
	}

	s.logger.Info("rokar dues applied",
		zap.String("entry_key", event.EntryKey),
		zap.Int("lines", len(event.DuesLines)))
	return nil
}
