package store

import (
	"errors"
	"strings"

	storeerrors "github.com/sagarkumargupta/retailops-staff-app-sub002/internal/store/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storeerrors.ErrStoreNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return storeerrors.ErrStoreCodeTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return storeerrors.ErrStoreCodeTaken
	}

	return err
}
