package careerpatherrors

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var (
	ErrCareerPathNotFound = apperror.New(
		apperror.CodeNotFound,
		"Career path not found",
		http.StatusNotFound,
	)
	ErrNoneForEmployee = apperror.New(
		apperror.CodeNotFound,
		"Career path not found for this employee",
		http.StatusNotFound,
	)
	ErrAlreadyExists = apperror.New(
		apperror.CodeInvalidState,
		"Career path already exists for this employee",
		http.StatusBadRequest,
	)
	ErrViewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to view this career path",
		http.StatusForbidden,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format",
		http.StatusUnprocessableEntity,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"No employee profile associated with this account",
		http.StatusForbidden,
	)
)
