package dashboarderrors

import (
	"net/http"

	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
)

var ErrProfileNotFound = apperror.New(
	apperror.CodeNotFound,
	"Employee profile not found",
	http.StatusNotFound,
)
