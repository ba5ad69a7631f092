package geofence

import (
	"net/http"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// CheckLocation answers whether the caller's position is inside the
// configured zone. Registered under the punch routes, auth required.
func (h *Handler) CheckLocation(c *gin.Context) {
	var req CheckLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, "Coordinates are required", nil)
		return
	}

	result, err := h.service.Check(c.Request.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg, nil)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg, nil)
}
