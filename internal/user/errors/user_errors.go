package usererrors

import (
	"net/http"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This username is already taken",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin or employee",
		http.StatusBadRequest,
	)
)
