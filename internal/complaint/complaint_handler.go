package complaint

import (
	"net/http"
	"strconv"

	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxAttachmentSize = 10 << 20

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("complaint.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("complaint.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("complaint request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusNotFound, "Resource not found", nil)
		return 0, false
	}
	return uint(id), true
}

func attachmentFromForm(c *gin.Context) (*AttachmentUpload, func(), bool) {
	fh, err := c.FormFile("attachment")
	if err != nil {
		return nil, func() {}, true
	}
	if fh.Size > maxAttachmentSize {
		response.Error(c, http.StatusUnprocessableEntity, "Attachment exceeds the 10MB limit", nil)
		return nil, func() {}, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Could not read the uploaded attachment", nil)
		return nil, func() {}, false
	}
	return &AttachmentUpload{Filename: fh.Filename, Content: f}, func() { f.Close() }, true
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	resp, err := h.service.List(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", resp)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("create complaint validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	att, closeAtt, ok := attachmentFromForm(c)
	if !ok {
		return
	}
	defer closeAtt()

	resp, err := h.service.Create(c.Request.Context(), actor, req, att)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResult(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, "Complaint submitted successfully", resp)
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", resp)
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateComplaintRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("update complaint validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	att, closeAtt, ok := attachmentFromForm(c)
	if !ok {
		return
	}
	defer closeAtt()

	resp, err := h.service.Update(c.Request.Context(), actor, id, req, att)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Complaint updated successfully", resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("update complaint status validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Complaint status updated successfully", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Complaint deleted successfully", nil)
}
