package errors

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

var (
	ErrEntryNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "rokar entry not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrEntryAlreadyExists = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "a rokar entry with business data already exists for this store and day",
		HTTPStatus: http.StatusConflict,
	}

	ErrClosingNotConfirmed = &apperror.AppError{
		Code:       apperror.CodeInvalidState,
		Message:    "closing balance must be confirmed before saving",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrConfirmMismatch = &apperror.AppError{
		Code:       apperror.CodeInvalidState,
		Message:    "confirmed closing balance does not match the derived closing balance",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrCashMismatch = &apperror.AppError{
		Code:       apperror.CodeInvalidState,
		Message:    "counted cash does not match the derived closing balance",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrNegativeAmount = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "amounts cannot be negative",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidDuesLine = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "dues lines need a customer name and a positive amount",
		HTTPStatus: http.StatusBadRequest,
	}
)
