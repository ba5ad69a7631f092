package auth

import (
	"net/http"
	"strings"

	autherrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/auth/errors"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	identity, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, identity, nil)
}

func (h *Handler) Verify(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		writeServiceError(c, autherrors.ErrInvalidToken)
		return
	}

	identity, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, identity, nil)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func writeBindingError(c *gin.Context, err error) {
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
