package absenceerrors

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var (
	ErrJustificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Absence justification not found",
		http.StatusNotFound,
	)
	ErrViewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to view this absence justification",
		http.StatusForbidden,
	)
	ErrUpdateForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update this absence justification",
		http.StatusForbidden,
	)
	ErrDeleteForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to delete this absence justification",
		http.StatusForbidden,
	)
	ErrDecideForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update absence justification status",
		http.StatusForbidden,
	)
	ErrNotPendingUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Can only update pending absence justifications",
		http.StatusBadRequest,
	)
	ErrNotPendingDelete = apperror.New(
		apperror.CodeInvalidState,
		"Can only delete pending absence justifications",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid absence date",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required when rejecting an absence justification",
		http.StatusUnprocessableEntity,
	)
	ErrDocumentStoreFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not store the uploaded document",
		http.StatusInternalServerError,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"No employee profile associated with this account",
		http.StatusForbidden,
	)
)
