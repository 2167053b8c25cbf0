package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/events"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/expense"
	lederrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger/errors"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/messaging/kafka"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/salaryrequest"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/contextutil"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store"
	storeerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/errors"
)

// Opening balance source annotations shown next to the resolved figure.
const (
	OpeningFromExistingEntry = "From existing entry"
	OpeningFromPreviousDay   = "Auto from previous day"
	OpeningNoPreviousDay     = "No previous day entry"
)

type Service interface {
	ResolveOpening(ctx context.Context, storeID uuid.UUID, date string) (*OpeningResolution, error)
	Preview(ctx context.Context, req PreviewRokarRequest) (*PreviewResponse, error)
	Save(ctx context.Context, req SaveRokarRequest, savedBy string) (*RokarEntryResponse, error)
	GetByStoreAndDate(ctx context.Context, storeID uuid.UUID, date string) (*RokarEntryResponse, error)
	ListByStoreAndRange(ctx context.Context, storeID uuid.UUID, from, to string) ([]RokarEntryResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	storeRepo  store.Repository
	expenses   expense.Repository
	salaryReqs salaryrequest.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	storeRepo store.Repository,
	expenses expense.Repository,
	salaryReqs salaryrequest.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("ledger.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		storeRepo:  storeRepo,
		expenses:   expenses,
		salaryReqs: salaryReqs,
		outbox:     outbox,
		logger:     l,
	}
}

func parseEntryDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, apperror.New(apperror.CodeInvalidInput, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
	}
	return d, nil
}

func (s *service) storeByID(ctx context.Context, storeID uuid.UUID) (*store.Store, error) {
	st, err := s.storeRepo.FindByID(ctx, storeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeerrors.ErrStoreNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load store", http.StatusInternalServerError)
	}
	return st, nil
}

// resolveOpening applies the carry-forward chain: the day's own entry wins,
// then the previous calendar day's closing balance, then zero. Entries older
// than one day never carry across a gap.
func (s *service) resolveOpening(ctx context.Context, storeID uuid.UUID, date time.Time) (OpeningResolution, error) {
	key := EntryKeyFor(storeID, date)

	existing, err := s.repo.FindByKey(ctx, key)
	if err == nil {
		return OpeningResolution{OpeningBalance: existing.OpeningBalance, Source: OpeningFromExistingEntry}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return OpeningResolution{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to resolve opening balance", http.StatusInternalServerError)
	}

	prev, err := s.repo.FindByKey(ctx, EntryKeyFor(storeID, date.AddDate(0, 0, -1)))
	if err == nil {
		return OpeningResolution{OpeningBalance: prev.ClosingBalance, Source: OpeningFromPreviousDay}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return OpeningResolution{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to resolve opening balance", http.StatusInternalServerError)
	}

	return OpeningResolution{OpeningBalance: decimal.Zero, Source: OpeningNoPreviousDay}, nil
}

func (s *service) ResolveOpening(ctx context.Context, storeID uuid.UUID, date string) (*OpeningResolution, error) {
	d, err := parseEntryDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.storeByID(ctx, storeID); err != nil {
		return nil, err
	}
	res, err := s.resolveOpening(ctx, storeID, d)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func validateAmounts(computerSale, manualSale, manualBilled decimal.Decimal, payments PaymentBreakdown, expenses ExpenseBreakdown, cash CashBreakdown) error {
	amounts := []decimal.Decimal{
		computerSale, manualSale, manualBilled,
		payments.Paytm, payments.PhonePe, payments.GPay, payments.BankDeposit, payments.Home,
		cash.Coins, cash.ForeignCash,
	}
	amounts = append(amounts, expenses.categories()...)
	for _, v := range amounts {
		if v.IsNegative() {
			return lederrors.ErrNegativeAmount
		}
	}
	for _, n := range []int{cash.Rs5, cash.Rs10, cash.Rs20, cash.Rs50, cash.Rs100, cash.Rs200, cash.Rs500} {
		if n < 0 {
			return lederrors.ErrNegativeAmount
		}
	}
	return nil
}

func buildDuesDetails(entryKey string, entryDate time.Time, kind string, lines []DuesLineRequest) ([]RokarDuesDetail, error) {
	details := make([]RokarDuesDetail, 0, len(lines))
	for _, l := range lines {
		if l.CustomerName == "" || !l.Amount.IsPositive() {
			return nil, lederrors.ErrInvalidDuesLine
		}
		dueDate := entryDate
		if l.DueDate != "" {
			d, err := time.Parse("2006-01-02", l.DueDate)
			if err != nil {
				return nil, apperror.New(apperror.CodeInvalidInput, "due_date must be in YYYY-MM-DD format", http.StatusBadRequest)
			}
			dueDate = d
		}
		details = append(details, RokarDuesDetail{
			ID:           uuid.New(),
			EntryKey:     entryKey,
			Kind:         kind,
			CustomerID:   l.CustomerID,
			CustomerName: l.CustomerName,
			Mobile:       l.Mobile,
			Amount:       l.Amount,
			ApprovedBy:   l.ApprovedBy,
			DueDate:      dueDate,
		})
	}
	return details, nil
}

// importedTotals pulls the day's approved expense and salary figures so the
// sheet never relies on hand-copied numbers.
func (s *service) importedTotals(ctx context.Context, storeID uuid.UUID, date time.Time) (otherExpense, staffSalary decimal.Decimal, err error) {
	otherExpense, err = s.expenses.SumApprovedByStoreAndDate(ctx, storeID.String(), date)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperror.Wrap(err, apperror.CodeInternalError, "failed to import approved expenses", http.StatusInternalServerError)
	}
	staffSalary, err = s.salaryReqs.SumApprovedByStoreAndPaymentDate(ctx, storeID.String(), date)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperror.Wrap(err, apperror.CodeInternalError, "failed to import approved salary payments", http.StatusInternalServerError)
	}
	return otherExpense, staffSalary, nil
}

func (s *service) Preview(ctx context.Context, req PreviewRokarRequest) (*PreviewResponse, error) {
	d, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(req.ComputerSale, req.ManualSale, req.ManualBilled, req.Payments, req.Expenses, req.Cash); err != nil {
		return nil, err
	}

	if _, err := s.storeByID(ctx, req.StoreID); err != nil {
		return nil, err
	}
	key := EntryKeyFor(req.StoreID, d)

	opening, err := s.resolveOpening(ctx, req.StoreID, d)
	if err != nil {
		return nil, err
	}

	given, err := buildDuesDetails(key, d, DuesKindGiven, req.DuesGivenLines)
	if err != nil {
		return nil, err
	}
	paid, err := buildDuesDetails(key, d, DuesKindPaid, req.DuesPaidLines)
	if err != nil {
		return nil, err
	}

	otherExpense, staffSalary, err := s.importedTotals(ctx, req.StoreID, d)
	if err != nil {
		return nil, err
	}

	duesGiven := SumDuesAmounts(given, DuesKindGiven)
	duesPaid := SumDuesAmounts(paid, DuesKindPaid)

	res := ComputeTotals(CalcInput{
		OpeningBalance:    opening.OpeningBalance,
		ComputerSale:      req.ComputerSale,
		ManualSale:        req.ManualSale,
		ManualBilled:      req.ManualBilled,
		Payments:          req.Payments,
		DuesGiven:         duesGiven,
		CustomerDuesPaid:  duesPaid,
		Expenses:          req.Expenses,
		OtherExpenseTotal: otherExpense,
		StaffSalaryTotal:  staffSalary,
		Cash:              req.Cash,
	})

	return &PreviewResponse{
		EntryKey:          key,
		Opening:           opening,
		TotalSale:         res.TotalSale,
		TotalCashOut:      res.TotalCashOut,
		DuesGiven:         duesGiven,
		CustomerDuesPaid:  duesPaid,
		OtherExpenseTotal: otherExpense,
		StaffSalaryTotal:  staffSalary,
		ExpenseTotal:      res.ExpenseTotal,
		ClosingBalance:    res.ClosingBalance,
		CashTotal:         res.CashTotal,
		CashDifference:    res.CashDifference,
		Balanced:          res.Balanced,
	}, nil
}

// Save persists the day's sheet. Regular entries must balance against the
// counted cash and carry a typed-back closing confirmation; a day that
// already holds business data is locked for good.
func (s *service) Save(ctx context.Context, req SaveRokarRequest, savedBy string) (*RokarEntryResponse, error) {
	d, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, err
	}
	st, err := s.storeByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	key := EntryKeyFor(req.StoreID, d)

	var entry *RokarEntry
	if req.IsAdminEntry {
		entry, err = s.buildAdminEntry(req, d, key, savedBy)
	} else {
		entry, err = s.buildRegularEntry(ctx, req, d, key, savedBy)
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}
	defer func() { _ = tx.Rollback() }()

	txRepo := s.repo.WithTx(tx)

	existing, err := txRepo.LockByKey(ctx, key)
	if err != nil {
		s.logger.Error("failed to lock rokar entry", zap.String("entry_key", key), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}
	if existing != nil && existing.IsSubstantial() {
		s.logger.Warn("rejected overwrite of substantial rokar entry",
			zap.String("entry_key", key),
			zap.String("saved_by", savedBy))
		return nil, lederrors.ErrEntryAlreadyExists
	}

	if err := txRepo.Replace(ctx, entry); err != nil {
		s.logger.Error("failed to write rokar entry", zap.String("entry_key", key), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}

	if err := s.enqueueSavedEvent(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit rokar entry", zap.String("entry_key", key), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}

	s.logger.Info("rokar entry saved",
		zap.String("entry_key", key),
		zap.String("store_code", st.Code),
		zap.Bool("is_admin_entry", entry.IsAdminEntry),
		zap.String("closing_balance", entry.ClosingBalance.String()),
		zap.String("saved_by", savedBy))

	resp := ToRokarEntryResponse(entry)
	return &resp, nil
}

// buildAdminEntry produces a placeholder that seeds an opening balance and
// nothing else. It carries the balance forward by closing at the same figure.
func (s *service) buildAdminEntry(req SaveRokarRequest, d time.Time, key, savedBy string) (*RokarEntry, error) {
	if req.OpeningBalance == nil {
		return nil, apperror.RequiredField("opening_balance")
	}
	if req.OpeningBalance.IsNegative() {
		return nil, lederrors.ErrNegativeAmount
	}
	return &RokarEntry{
		EntryKey:       key,
		StoreID:        req.StoreID,
		Date:           d,
		OpeningBalance: *req.OpeningBalance,
		ClosingBalance: *req.OpeningBalance,
		IsAdminEntry:   true,
		SavedBy:        savedBy,
	}, nil
}

func (s *service) buildRegularEntry(ctx context.Context, req SaveRokarRequest, d time.Time, key, savedBy string) (*RokarEntry, error) {
	if err := validateAmounts(req.ComputerSale, req.ManualSale, req.ManualBilled, req.Payments, req.Expenses, req.Cash); err != nil {
		return nil, err
	}

	opening, err := s.resolveOpening(ctx, req.StoreID, d)
	if err != nil {
		return nil, err
	}

	given, err := buildDuesDetails(key, d, DuesKindGiven, req.DuesGivenLines)
	if err != nil {
		return nil, err
	}
	paid, err := buildDuesDetails(key, d, DuesKindPaid, req.DuesPaidLines)
	if err != nil {
		return nil, err
	}

	otherExpense, staffSalary, err := s.importedTotals(ctx, req.StoreID, d)
	if err != nil {
		return nil, err
	}

	duesGiven := SumDuesAmounts(given, DuesKindGiven)
	duesPaid := SumDuesAmounts(paid, DuesKindPaid)

	res := ComputeTotals(CalcInput{
		OpeningBalance:    opening.OpeningBalance,
		ComputerSale:      req.ComputerSale,
		ManualSale:        req.ManualSale,
		ManualBilled:      req.ManualBilled,
		Payments:          req.Payments,
		DuesGiven:         duesGiven,
		CustomerDuesPaid:  duesPaid,
		Expenses:          req.Expenses,
		OtherExpenseTotal: otherExpense,
		StaffSalaryTotal:  staffSalary,
		Cash:              req.Cash,
	})

	if !res.Balanced {
		return nil, &apperror.AppError{
			Code: lederrors.ErrCashMismatch.Code,
			Message: fmt.Sprintf("counted cash %s differs from derived closing balance %s by %s",
				res.CashTotal.StringFixed(2), res.ClosingBalance.StringFixed(2), res.CashDifference.Abs().StringFixed(2)),
			HTTPStatus: lederrors.ErrCashMismatch.HTTPStatus,
			Err:        lederrors.ErrCashMismatch,
		}
	}

	if req.ConfirmedClosingBalance == nil {
		return nil, lederrors.ErrClosingNotConfirmed
	}
	if !req.ConfirmedClosingBalance.Equal(res.ClosingBalance) {
		return nil, &apperror.AppError{
			Code: lederrors.ErrConfirmMismatch.Code,
			Message: fmt.Sprintf("confirmed closing balance %s does not match derived %s",
				req.ConfirmedClosingBalance.StringFixed(2), res.ClosingBalance.StringFixed(2)),
			HTTPStatus: lederrors.ErrConfirmMismatch.HTTPStatus,
			Err:        lederrors.ErrConfirmMismatch,
		}
	}

	return &RokarEntry{
		EntryKey:          key,
		StoreID:           req.StoreID,
		Date:              d,
		OpeningBalance:    opening.OpeningBalance,
		ComputerSale:      req.ComputerSale,
		ManualSale:        req.ManualSale,
		ManualBilled:      req.ManualBilled,
		TotalSale:         res.TotalSale,
		Payments:          req.Payments,
		TotalCashOut:      res.TotalCashOut,
		DuesGiven:         duesGiven,
		CustomerDuesPaid:  duesPaid,
		Expenses:          req.Expenses,
		OtherExpenseTotal: otherExpense,
		StaffSalaryTotal:  staffSalary,
		ExpenseTotal:      res.ExpenseTotal,
		ClosingBalance:    res.ClosingBalance,
		Cash:              req.Cash,
		CashTotal:         res.CashTotal,
		IsAdminEntry:      false,
		SavedBy:           savedBy,
		DuesDetails:       append(given, paid...),
	}, nil
}

func (s *service) enqueueSavedEvent(ctx context.Context, tx *sql.Tx, entry *RokarEntry) error {
	lines := make([]events.RokarDuesLine, 0, len(entry.DuesDetails))
	for _, d := range entry.DuesDetails {
		line := events.RokarDuesLine{
			CustomerName: d.CustomerName,
			Mobile:       d.Mobile,
			Kind:         d.Kind,
			Amount:       d.Amount.StringFixed(2),
		}
		if d.CustomerID != nil {
			line.CustomerID = d.CustomerID.String()
		}
		lines = append(lines, line)
	}

	event := events.RokarEntrySavedEvent{
		EventType:      events.EventTypeRokarEntrySaved,
		RequestID:      contextutil.GetRequestID(ctx),
		EntryKey:       entry.EntryKey,
		StoreID:        entry.StoreID.String(),
		EntryDate:      entry.Date.Format("2006-01-02"),
		TotalSale:      entry.TotalSale.StringFixed(2),
		ClosingBalance: entry.ClosingBalance.StringFixed(2),
		CashTotal:      entry.CashTotal.StringFixed(2),
		Balanced:       true,
		IsAdminEntry:   entry.IsAdminEntry,
		SavedBy:        entry.SavedBy,
		DuesLines:      lines,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal rokar event", zap.String("entry_key", entry.EntryKey), zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}

	outboxRepo := s.outbox.WithTx(tx)
	err = outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "rokar_entry",
		AggregateID:   entry.EntryKey,
		EventType:     events.EventTypeRokarEntrySaved,
		Topic:         events.TopicRokarEntries,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("failed to enqueue rokar event", zap.String("entry_key", entry.EntryKey), zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to save rokar entry", http.StatusInternalServerError)
	}
	return nil
}

func (s *service) GetByStoreAndDate(ctx context.Context, storeID uuid.UUID, date string) (*RokarEntryResponse, error) {
	d, err := parseEntryDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.storeByID(ctx, storeID); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByKey(ctx, EntryKeyFor(storeID, d))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lederrors.ErrEntryNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load rokar entry", http.StatusInternalServerError)
	}

	resp := ToRokarEntryResponse(entry)
	return &resp, nil
}

func (s *service) ListByStoreAndRange(ctx context.Context, storeID uuid.UUID, from, to string) ([]RokarEntryResponse, error) {
	fromDate, err := parseEntryDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseEntryDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, apperror.New(apperror.CodeInvalidInput, "to must not be before from", http.StatusBadRequest)
	}

	entries, err := s.repo.ListByStoreAndRange(ctx, storeID, fromDate, toDate)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list rokar entries", http.StatusInternalServerError)
	}

	out := make([]RokarEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToRokarEntryResponse(&entries[i]))
	}
	return out, nil
}
