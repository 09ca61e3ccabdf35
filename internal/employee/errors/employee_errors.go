package employeeerrors

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeCodeAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"Employee code is already in use",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusUnprocessableEntity,
	)
)
