package errors

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "customer not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMobileTaken = &apperror.AppError{
		Code:       apperror.CodeConflict,
		Message:    "a customer with this mobile number already exists for the store",
		HTTPStatus: http.StatusConflict,
	}
)
