package complainterrors

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var (
	ErrComplaintNotFound = apperror.New(
		apperror.CodeNotFound,
		"Complaint not found",
		http.StatusNotFound,
	)
	ErrViewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to view this complaint",
		http.StatusForbidden,
	)
	ErrUpdateForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update this complaint",
		http.StatusForbidden,
	)
	ErrDeleteForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to delete this complaint",
		http.StatusForbidden,
	)
	ErrDecideForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update complaint status",
		http.StatusForbidden,
	)
	ErrNotPendingUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Can only update pending complaints",
		http.StatusBadRequest,
	)
	ErrNotPendingDelete = apperror.New(
		apperror.CodeInvalidState,
		"Can only delete pending complaints",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Complaint status cannot change from its current state",
		http.StatusBadRequest,
	)
	ErrResolutionDetailsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Resolution details are required when resolving or rejecting a complaint",
		http.StatusUnprocessableEntity,
	)
	ErrAttachmentStoreFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not store the uploaded attachment",
		http.StatusInternalServerError,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"No employee profile associated with this account",
		http.StatusForbidden,
	)
)
