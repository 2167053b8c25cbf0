package attendance

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Mark records the caller's own attendance for a day; identity comes from
// the JWT claims, never the payload.
func (h *Handler) Mark(c *gin.Context) {
	staffEmail := c.GetString("staff_email")
	storeID := c.GetString("store_id")

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), staffEmail, storeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByRange(c *gin.Context) {
	email := c.Param("email")
	from := c.Query("from")
	to := c.Query("to")

	resp, err := h.service.GetByStaffAndRange(c.Request.Context(), email, from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMonthlySummary(c *gin.Context) {
	email := c.Param("email")
	month := c.Param("month")

	resp, err := h.service.GetMonthlySummary(c.Request.Context(), email, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
