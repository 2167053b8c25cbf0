package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/expense"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger"
	lederrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/ledger/errors"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/messaging/kafka"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/salaryrequest"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	assert.NoError(t, err)
	return id
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return d
}

type fakeRokarRepository struct {
	findByKeyFn   func(ctx context.Context, key string) (*ledger.RokarEntry, error)
	listByRangeFn func(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]ledger.RokarEntry, error)
	lockByKeyFn   func(ctx context.Context, key string) (*ledger.RokarEntry, error)
	replaceFn     func(ctx context.Context, entry *ledger.RokarEntry) error
}

func (f *fakeRokarRepository) WithTx(tx *sql.Tx) ledger.Repository {
	return f
}

func (f *fakeRokarRepository) FindByKey(ctx context.Context, key string) (*ledger.RokarEntry, error) {
	if f.findByKeyFn != nil {
		return f.findByKeyFn(ctx, key)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRokarRepository) ListByStoreAndRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]ledger.RokarEntry, error) {
	if f.listByRangeFn != nil {
		return f.listByRangeFn(ctx, storeID, from, to)
	}
	return nil, nil
}

func (f *fakeRokarRepository) LockByKey(ctx context.Context, key string) (*ledger.RokarEntry, error) {
	if f.lockByKeyFn != nil {
		return f.lockByKeyFn(ctx, key)
	}
	return nil, nil
}

func (f *fakeRokarRepository) Replace(ctx context.Context, entry *ledger.RokarEntry) error {
	if f.replaceFn != nil {
		return f.replaceFn(ctx, entry)
	}
	return nil
}

type fakeStoreRepository struct {
	findByIDFn func(ctx context.Context, id string) (*store.Store, error)
}

func (f *fakeStoreRepository) WithTx(tx *sql.Tx) store.Repository { return f }

func (f *fakeStoreRepository) Create(ctx context.Context, s *store.Store) error { return nil }

func (f *fakeStoreRepository) FindAll(ctx context.Context) ([]store.Store, error) { return nil, nil }

func (f *fakeStoreRepository) FindByID(ctx context.Context, id string) (*store.Store, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &store.Store{ID: uuid.MustParse(id), Code: "ST-01", Name: "Main Street"}, nil
}

func (f *fakeStoreRepository) FindByCode(ctx context.Context, code string) (*store.Store, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStoreRepository) Update(ctx context.Context, s *store.Store) error { return nil }

func (f *fakeStoreRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeExpenseRepository struct {
	sumApprovedFn func(ctx context.Context, storeID string, date time.Time) (decimal.Decimal, error)
}

func (f *fakeExpenseRepository) WithTx(tx *sql.Tx) expense.Repository { return f }

func (f *fakeExpenseRepository) Create(ctx context.Context, e *expense.OtherExpense) error {
	return nil
}

func (f *fakeExpenseRepository) FindAllByStore(ctx context.Context, storeID string) ([]expense.OtherExpense, error) {
	return nil, nil
}

func (f *fakeExpenseRepository) FindByID(ctx context.Context, id string) (*expense.OtherExpense, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseRepository) Update(ctx context.Context, e *expense.OtherExpense) error {
	return nil
}

func (f *fakeExpenseRepository) SumApprovedByStoreAndDate(ctx context.Context, storeID string, date time.Time) (decimal.Decimal, error) {
	if f.sumApprovedFn != nil {
		return f.sumApprovedFn(ctx, storeID, date)
	}
	return decimal.Zero, nil
}

type fakeSalaryRequestRepository struct {
	sumApprovedFn func(ctx context.Context, storeID string, paymentDate time.Time) (decimal.Decimal, error)
}

func (f *fakeSalaryRequestRepository) WithTx(tx *sql.Tx) salaryrequest.Repository { return f }

func (f *fakeSalaryRequestRepository) Create(ctx context.Context, s *salaryrequest.SalaryRequest) error {
	return nil
}

func (f *fakeSalaryRequestRepository) FindAllByStore(ctx context.Context, storeID string) ([]salaryrequest.SalaryRequest, error) {
	return nil, nil
}

func (f *fakeSalaryRequestRepository) FindByID(ctx context.Context, id string) (*salaryrequest.SalaryRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRequestRepository) Update(ctx context.Context, s *salaryrequest.SalaryRequest) error {
	return nil
}

func (f *fakeSalaryRequestRepository) SumApprovedByStoreAndPaymentDate(ctx context.Context, storeID string, paymentDate time.Time) (decimal.Decimal, error) {
	if f.sumApprovedFn != nil {
		return f.sumApprovedFn(ctx, storeID, paymentDate)
	}
	return decimal.Zero, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type ledgerServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    ledger.Service
	repo       *fakeRokarRepository
	stores     *fakeStoreRepository
	expenses   *fakeExpenseRepository
	salaryReqs *fakeSalaryRequestRepository
	outbox     *fakeOutboxRepository
}

func setupLedgerServiceTest(t *testing.T) *ledgerServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	d := &ledgerServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       &fakeRokarRepository{},
		stores:     &fakeStoreRepository{},
		expenses:   &fakeExpenseRepository{},
		salaryReqs: &fakeSalaryRequestRepository{},
		outbox:     &fakeOutboxRepository{},
	}
	d.service = ledger.NewService(db, d.repo, d.stores, d.expenses, d.salaryReqs, d.outbox)
	return d
}

var testStoreID = uuid.MustParse("6f1d8a64-64a4-4b63-84f8-6a1f4c8738d2")

func TestResolveOpening(t *testing.T) {
	t.Run("uses the day's own entry when one exists", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
			return &ledger.RokarEntry{EntryKey: key, OpeningBalance: dec("4200")}, nil
		}

		res, err := deps.service.ResolveOpening(context.Background(), testStoreID, "2025-03-10")

		assert.NoError(t, err)
		assert.True(t, res.OpeningBalance.Equal(dec("4200")))
		assert.Equal(t, ledger.OpeningFromExistingEntry, res.Source)
	})

	t.Run("carries forward the previous day's closing balance", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)
		defer deps.db.Close()

		prevKey := ledger.EntryKeyFor(testStoreID, mustDate(t, "2025-03-09"))
		deps.repo.findByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
			if key == prevKey {
				return &ledger.RokarEntry{EntryKey: key, ClosingBalance: dec("9900.25")}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		res, err := deps.service.ResolveOpening(context.Background(), testStoreID, "2025-03-10")

		assert.NoError(t, err)
		assert.True(t, res.OpeningBalance.Equal(dec("9900.25")))
		assert.Equal(t, ledger.OpeningFromPreviousDay, res.Source)
	})

	t.Run("does not carry an older entry across a gap day", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)
		defer deps.db.Close()

		olderKey := ledger.EntryKeyFor(testStoreID, mustDate(t, "2025-03-07"))
		var asked []string
		deps.repo.findByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
			asked = append(asked, key)
			if key == olderKey {
				return &ledger.RokarEntry{EntryKey: key, ClosingBalance: dec("7777")}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		res, err := deps.service.ResolveOpening(context.Background(), testStoreID, "2025-03-10")

		assert.NoError(t, err)
		assert.True(t, res.OpeningBalance.IsZero())
		assert.Equal(t, ledger.OpeningNoPreviousDay, res.Source)
		assert.Equal(t, []string{
			ledger.EntryKeyFor(testStoreID, mustDate(t, "2025-03-10")),
			ledger.EntryKeyFor(testStoreID, mustDate(t, "2025-03-09")),
		}, asked)
	})

	t.Run("defaults to zero with no history", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)
		defer deps.db.Close()

		res, err := deps.service.ResolveOpening(context.Background(), testStoreID, "2025-03-10")

		assert.NoError(t, err)
		assert.True(t, res.OpeningBalance.IsZero())
		assert.Equal(t, ledger.OpeningNoPreviousDay, res.Source)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		deps := setupLedgerServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ResolveOpening(context.Background(), testStoreID, "10-03-2025")

		assert.Error(t, err)
	})
}

// balancedSaveRequest builds a sheet whose counted cash matches the derived
// closing balance exactly: no history, 1000 in computer sales, ten 100s in
// the till.
func balancedSaveRequest() ledger.SaveRokarRequest {
	confirmed := decimal.NewFromInt(1000)
	return ledger.SaveRokarRequest{
		StoreID:                 testStoreID,
		Date:                    "2025-03-10",
		ComputerSale:            decimal.NewFromInt(1000),
		Cash:                    ledger.CashBreakdown{Rs100: 10},
		ConfirmedClosingBalance: &confirmed,
	}
}

func TestSave_PersistsBalancedEntryAndEnqueuesEvent(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	var saved *ledger.RokarEntry
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		saved = entry
		return nil
	}
	var enqueued *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		enqueued = &event
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Save(context.Background(), balancedSaveRequest(), "manager@example.com")

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

	assert.NotNil(t, saved)
	assert.Equal(t, "6f1d8a64-64a4-4b63-84f8-6a1f4c8738d2_2025-03-10", saved.EntryKey)
	assert.True(t, saved.TotalSale.Equal(dec("1000")))
	assert.True(t, saved.ClosingBalance.Equal(dec("1000")))
	assert.True(t, saved.CashTotal.Equal(dec("1000")))
	assert.Equal(t, "manager@example.com", saved.SavedBy)

	assert.NotNil(t, enqueued)
	assert.Equal(t, saved.EntryKey, enqueued.AggregateID)
	assert.Equal(t, "rokar_entry", enqueued.AggregateType)
	assert.Equal(t, kafka.OutboxStatusPending, enqueued.Status)

	assert.Equal(t, saved.EntryKey, resp.EntryKey)
	assert.Equal(t, "manager@example.com", resp.SavedBy)
}

func TestSave_RejectsOverwriteOfSubstantialEntry(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	deps.repo.lockByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
		return &ledger.RokarEntry{EntryKey: key, TotalSale: dec("5000")}, nil
	}
	replaced := false
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		replaced = true
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	_, err := deps.service.Save(context.Background(), balancedSaveRequest(), "manager@example.com")

	assert.ErrorIs(t, err, lederrors.ErrEntryAlreadyExists)
	assert.False(t, replaced)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSave_OverwritesAdminPlaceholder(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	deps.repo.lockByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
		return &ledger.RokarEntry{EntryKey: key, OpeningBalance: dec("3000"), IsAdminEntry: true}, nil
	}
	replaced := false
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		replaced = true
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	_, err := deps.service.Save(context.Background(), balancedSaveRequest(), "manager@example.com")

	assert.NoError(t, err)
	assert.True(t, replaced)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSave_RejectsCashMismatch(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := balancedSaveRequest()
	req.Cash = ledger.CashBreakdown{Rs100: 9} // 900 counted against 1000 derived

	_, err := deps.service.Save(context.Background(), req, "manager@example.com")

	assert.ErrorIs(t, err, lederrors.ErrCashMismatch)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSave_RequiresClosingConfirmation(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := balancedSaveRequest()
	req.ConfirmedClosingBalance = nil

	_, err := deps.service.Save(context.Background(), req, "manager@example.com")

	assert.ErrorIs(t, err, lederrors.ErrClosingNotConfirmed)
}

func TestSave_RejectsWrongConfirmation(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	wrong := decimal.NewFromInt(999)
	req := balancedSaveRequest()
	req.ConfirmedClosingBalance = &wrong

	_, err := deps.service.Save(context.Background(), req, "manager@example.com")

	assert.ErrorIs(t, err, lederrors.ErrConfirmMismatch)
}

func TestSave_RejectsNegativeAmounts(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := balancedSaveRequest()
	req.ManualSale = dec("-1")

	_, err := deps.service.Save(context.Background(), req, "manager@example.com")

	assert.ErrorIs(t, err, lederrors.ErrNegativeAmount)
}

func TestSave_AdminEntrySeedsOpeningBalance(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	var saved *ledger.RokarEntry
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		saved = entry
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	opening := decimal.NewFromInt(7500)
	req := ledger.SaveRokarRequest{
		StoreID:        testStoreID,
		Date:           "2025-03-10",
		IsAdminEntry:   true,
		OpeningBalance: &opening,
	}

	_, err := deps.service.Save(context.Background(), req, "owner@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.True(t, saved.IsAdminEntry)
	assert.True(t, saved.OpeningBalance.Equal(dec("7500")))
	assert.True(t, saved.ClosingBalance.Equal(dec("7500")))
	assert.False(t, saved.IsSubstantial())
}

func TestSave_AdminEntryRequiresOpeningBalance(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := ledger.SaveRokarRequest{
		StoreID:      testStoreID,
		Date:         "2025-03-10",
		IsAdminEntry: true,
	}

	_, err := deps.service.Save(context.Background(), req, "owner@example.com")

	assert.Error(t, err)
}

func TestSave_ImportsApprovedExpenseAndSalaryTotals(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	deps.expenses.sumApprovedFn = func(ctx context.Context, storeID string, date time.Time) (decimal.Decimal, error) {
		assert.Equal(t, testStoreID.String(), storeID)
		return dec("300"), nil
	}
	deps.salaryReqs.sumApprovedFn = func(ctx context.Context, storeID string, paymentDate time.Time) (decimal.Decimal, error) {
		return dec("200"), nil
	}

	var saved *ledger.RokarEntry
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		saved = entry
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	// 1000 in sales minus 300 expenses minus 200 salary leaves 500 in the till.
	confirmed := decimal.NewFromInt(500)
	req := ledger.SaveRokarRequest{
		StoreID:                 testStoreID,
		Date:                    "2025-03-10",
		ComputerSale:            decimal.NewFromInt(1000),
		Cash:                    ledger.CashBreakdown{Rs500: 1},
		ConfirmedClosingBalance: &confirmed,
	}

	_, err := deps.service.Save(context.Background(), req, "manager@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.True(t, saved.OtherExpenseTotal.Equal(dec("300")))
	assert.True(t, saved.StaffSalaryTotal.Equal(dec("200")))
	assert.True(t, saved.ClosingBalance.Equal(dec("500")))
}

func TestPreview_ReportsImbalanceWithoutSaving(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	replaced := false
	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		replaced = true
		return nil
	}

	req := ledger.PreviewRokarRequest{
		StoreID:      testStoreID,
		Date:         "2025-03-10",
		ComputerSale: decimal.NewFromInt(1000),
		Cash:         ledger.CashBreakdown{Rs100: 9},
	}

	res, err := deps.service.Preview(context.Background(), req)

	assert.NoError(t, err)
	assert.False(t, res.Balanced)
	assert.True(t, res.CashDifference.Equal(dec("100")))
	assert.False(t, replaced)
}

func TestPreview_SumsItemizedDuesLines(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := ledger.PreviewRokarRequest{
		StoreID: testStoreID,
		Date:    "2025-03-10",
		DuesGivenLines: []ledger.DuesLineRequest{
			{CustomerName: "Ravi Kumar", Amount: dec("150")},
			{CustomerName: "Sita Devi", Amount: dec("50")},
		},
		DuesPaidLines: []ledger.DuesLineRequest{
			{CustomerName: "Mohan Lal", Amount: dec("75")},
		},
	}

	res, err := deps.service.Preview(context.Background(), req)

	assert.NoError(t, err)
	assert.True(t, res.DuesGiven.Equal(dec("200")))
	assert.True(t, res.CustomerDuesPaid.Equal(dec("75")))
	// opening 0 + 75 paid - 200 given
	assert.True(t, res.ClosingBalance.Equal(dec("-125")))
}

func TestPreview_RejectsDuesLineWithoutName(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	req := ledger.PreviewRokarRequest{
		StoreID:        testStoreID,
		Date:           "2025-03-10",
		DuesGivenLines: []ledger.DuesLineRequest{{Amount: dec("100")}},
	}

	_, err := deps.service.Preview(context.Background(), req)

	assert.ErrorIs(t, err, lederrors.ErrInvalidDuesLine)
}

func TestGetByStoreAndDate_NotFound(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByKeyFn = func(ctx context.Context, key string) (*ledger.RokarEntry, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByStoreAndDate(context.Background(), testStoreID, "2025-03-10")

	assert.ErrorIs(t, err, lederrors.ErrEntryNotFound)
}

func TestListByStoreAndRange_RejectsInvertedRange(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ListByStoreAndRange(context.Background(), testStoreID, "2025-03-10", "2025-03-01")

	assert.Error(t, err)
}

func TestSave_SurfacesReplaceFailure(t *testing.T) {
	deps := setupLedgerServiceTest(t)
	defer deps.db.Close()

	deps.repo.replaceFn = func(ctx context.Context, entry *ledger.RokarEntry) error {
		return errors.New("write failed")
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	_, err := deps.service.Save(context.Background(), balancedSaveRequest(), "manager@example.com")

	assert.Error(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
