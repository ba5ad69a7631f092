package reporterrors

import (
	"net/http"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be between 1 and 12",
		http.StatusBadRequest,
	)

	ErrMailerNotConfigured = apperror.New(
		apperror.CodeServiceUnavailable,
		"Email delivery is not configured",
		http.StatusServiceUnavailable,
	)

	ErrNoArchive = apperror.New(
		apperror.CodeNotFound,
		"No archive exists for that year",
		http.StatusNotFound,
	)
)
