package absence

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

const maxDocumentSize = 10 << 20 // 10 MiB, matching the upload rule

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("absence.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("absence request failed",
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

// documentFromForm extracts the optional multipart document. The caller
// must close the returned closer after the service call.
func documentFromForm(c *gin.Context) (*DocumentUpload, func(), bool) {
	fh, err := c.FormFile("document")
	if err != nil {
		return nil, func() {}, true // absent is fine
	}
	if fh.Size > maxDocumentSize {
		response.Error(c, http.StatusUnprocessableEntity, "Document exceeds the 10MB limit", nil)
		return nil, func() {}, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Could not read the uploaded document", nil)
		return nil, func() {}, false
	}
	return &DocumentUpload{Filename: fh.Filename, Content: f}, func() { f.Close() }, true
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

	var req CreateAbsenceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("create absence validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	doc, closeDoc, ok := documentFromForm(c)
	if !ok {
		return
	}
	defer closeDoc()

	resp, err := h.service.Create(c.Request.Context(), actor, req, doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.CacheIdempotentResult(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, "Absence justification submitted successfully", resp)
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

	var req UpdateAbsenceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("update absence validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	doc, closeDoc, ok := documentFromForm(c)
	if !ok {
		return
	}
	defer closeDoc()

	resp, err := h.service.Update(c.Request.Context(), actor, id, req, doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Absence justification updated successfully", resp)
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

	var req UpdateAbsenceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("update absence status validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Absence justification "+req.Status+" successfully", resp)
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
	response.Success(c, http.StatusOK, "Absence justification deleted successfully", nil)
}
