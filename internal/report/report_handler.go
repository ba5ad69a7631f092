package report

import (
	"net/http"
	"time"

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

func (h *Handler) SendTest(c *gin.Context) {
	if err := h.service.SendTestEmail(c.Request.Context()); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Test email sent"}, nil)
}

func (h *Handler) SendDaily(c *gin.Context) {
	// Body is optional; an empty request means "today".
	var req DailyEmailRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
	}

	rep, err := h.service.SendDailySummary(c.Request.Context(), req.Date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) SendMonthly(c *gin.Context) {
	// Body is optional; an empty request means the current month.
	var req MonthlyEmailRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			mapped := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
			return
		}
	}

	rep, err := h.service.SendMonthlySummary(c.Request.Context(), req.Year, time.Month(req.Month))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
