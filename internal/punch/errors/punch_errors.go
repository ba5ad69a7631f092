package puncherrors

import (
	"net/http"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown clock action",
		http.StatusBadRequest,
	)

	ErrAlreadyStarted = apperror.New(
		apperror.CodeInvalidState,
		"You have already started your day",
		http.StatusBadRequest,
	)

	ErrNotWorking = apperror.New(
		apperror.CodeInvalidState,
		"You must be working to start a break",
		http.StatusBadRequest,
	)

	ErrNotOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"You are not on a break right now",
		http.StatusBadRequest,
	)

	ErrDayEnded = apperror.New(
		apperror.CodeInvalidState,
		"Your day has already ended",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrCoordinatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Coordinates are required",
		http.StatusBadRequest,
	)
)
