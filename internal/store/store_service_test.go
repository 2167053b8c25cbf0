package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store"
	storeerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/errors"
	storeMock "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type storeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service store.Service
	repo    *storeMock.MockRepository
}

func setupStoreServiceTest(t *testing.T) *storeServiceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := storeMock.NewMockRepository(ctrl)

	return &storeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: store.NewService(db, repo),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() store.CreateStoreRequest {
	return store.CreateStoreRequest{
		Code:         "BR-MUZ-01",
		Brand:        "Baba Readymade",
		Name:         "Motijheel Main",
		City:         "Muzaffarpur",
		ShiftStart:   "10:00",
		LateGraceMin: 15,
		LatePenalty:  "50",
	}
}

func TestStoreService_Create(t *testing.T) {
	t.Run("persists and returns the new store", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *store.Store) error {
				s.ID = uuid.New()
				return nil
			})

		resp, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "BR-MUZ-01", resp.Code)
		assert.Equal(t, "10:00", resp.ShiftStart)
		assert.Equal(t, "50.00", resp.LatePenalty)
		assert.True(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects a malformed shift start", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		req := validCreateRequest()
		req.ShiftStart = "25:00"

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, storeerrors.ErrInvalidShiftStart)
	})

	t.Run("rejects a negative late penalty", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		req := validCreateRequest()
		req.LatePenalty = "-10"

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, storeerrors.ErrInvalidLatePenalty)
	})

	t.Run("maps a duplicate code to a conflict", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.ErrorIs(t, err, storeerrors.ErrStoreCodeTaken)
	})
}

func TestStoreService_GetByID(t *testing.T) {
	t.Run("returns the mapped store", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.EXPECT().FindByID(gomock.Any(), id.String()).
			Return(&store.Store{ID: id, Code: "BR-MUZ-01", ShiftStart: "10:00"}, nil)

		resp, err := deps.service.GetByID(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("maps a missing row to not found", func(t *testing.T) {
		deps := setupStoreServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, storeerrors.ErrStoreNotFound)
	})
}

func TestStoreService_Update(t *testing.T) {
	deps := setupStoreServiceTest(t)
	defer deps.db.Close()

	id := uuid.New()
	existing := &store.Store{ID: id, Code: "BR-MUZ-01", Brand: "Old", ShiftStart: "10:00", Active: true}

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(gomock.Any(), id.String()).Return(existing, nil)
	deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *store.Store) error {
			assert.Equal(t, "New Brand", s.Brand)
			assert.Equal(t, "11:30", s.ShiftStart)
			assert.False(t, s.Active)
			return nil
		})

	inactive := false
	resp, err := deps.service.Update(context.Background(), id.String(), store.UpdateStoreRequest{
		Brand:        "New Brand",
		Name:         "Motijheel Main",
		ShiftStart:   "11:30",
		LateGraceMin: 10,
		Active:       &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Brand", resp.Brand)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestStoreService_Delete(t *testing.T) {
	deps := setupStoreServiceTest(t)
	defer deps.db.Close()

	id := uuid.NewString()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

	assert.NoError(t, deps.service.Delete(context.Background(), id))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
