package errors

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

var (
	ErrTargetNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "no target set for this staff member and month",
		HTTPStatus: http.StatusNotFound,
	}

	ErrInvalidAmount = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "target amount must be positive",
		HTTPStatus: http.StatusBadRequest,
	}
)
