package storeerrors

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
)

var (
	ErrInvalidStoreID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid store id",
		http.StatusBadRequest,
	)
	ErrInvalidShiftStart = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift_start, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidLatePenalty = apperror.New(
		apperror.CodeInvalidInput,
		"invalid late_penalty amount",
		http.StatusBadRequest,
	)
	ErrStoreNotFound = apperror.New(
		apperror.CodeNotFound,
		"store not found",
		http.StatusNotFound,
	)
	ErrStoreCodeTaken = apperror.New(
		apperror.CodeConflict,
		"store code is already in use",
		http.StatusConflict,
	)
)
