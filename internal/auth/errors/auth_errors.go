package autherrors

import (
	"net/http"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Incorrect username or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Admin access required",
		http.StatusForbidden,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
)
