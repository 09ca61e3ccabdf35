package leaveerrors

import (
	"fmt"
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrViewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to view this leave request",
		http.StatusForbidden,
	)
	ErrUpdateForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update this leave request",
		http.StatusForbidden,
	)
	ErrCancelForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to cancel this leave request",
		http.StatusForbidden,
	)
	ErrDecideForbidden = apperror.New(
		apperror.CodeForbidden,
		"Unauthorized to update leave request status",
		http.StatusForbidden,
	)
	ErrNotPendingUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Can only update pending leave requests",
		http.StatusBadRequest,
	)
	ErrNotPendingCancel = apperror.New(
		apperror.CodeInvalidState,
		"Can only cancel pending leave requests",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be on or after start date",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required when rejecting a leave request",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalanceUpdate = apperror.New(
		apperror.CodeInvalidState,
		"Insufficient leave balance for the updated request",
		http.StatusBadRequest,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"No employee profile associated with this account",
		http.StatusForbidden,
	)
)

// ErrInsufficientBalance reports the days actually available, matching
// the message shown to employees at submission time.
func ErrInsufficientBalance(available int) error {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Insufficient leave balance. Available: %d days.", available),
		http.StatusBadRequest,
	)
}
