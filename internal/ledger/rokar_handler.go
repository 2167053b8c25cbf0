package ledger

import (
	"net/http"

	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/apperror"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/shared/response"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("rokar request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func storeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(apperror.RequiredField("store_id"))
		response.Error(c, httpErr.Status, httpErr.Code, "store_id must be a valid UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// GET /rokar/opening?store_id=&date=
func (h *Handler) ResolveOpening(c *gin.Context) {
	storeID, ok := storeIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.ResolveOpening(c.Request.Context(), storeID, c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// POST /rokar/preview
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRokarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// POST /rokar
func (h *Handler) Save(c *gin.Context) {
	var req SaveRokarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	// Only owner-level roles may write admin placeholder entries.
	if req.IsAdminEntry {
		role := c.GetString("role")
		if role != staff.RoleSuperAdmin && role != staff.RoleAdmin && role != staff.RoleOwner {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
	}

	resp, err := h.service.Save(c.Request.Context(), req, c.GetString("staff_email"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GET /rokar/entry?store_id=&date=
func (h *Handler) GetByStoreAndDate(c *gin.Context) {
	storeID, ok := storeIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByStoreAndDate(c.Request.Context(), storeID, c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GET /rokar?store_id=&from=&to=
func (h *Handler) ListByRange(c *gin.Context) {
	storeID, ok := storeIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.ListByStoreAndRange(c.Request.Context(), storeID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
