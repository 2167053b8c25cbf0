package attendanceerrors

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"invalid check_in, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"invalid amount, expected a non-negative number",
		http.StatusBadRequest,
	)
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance is already marked for this day",
		http.StatusConflict,
	)
	ErrMissingStore = apperror.New(
		apperror.CodeInvalidInput,
		"staff profile has no assigned store",
		http.StatusBadRequest,
	)
)
