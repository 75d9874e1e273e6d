package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rc-service/internal/domain/rc"
	"rc-service/internal/service"
)

type Handler struct {
	rcService *service.RCService
	log       zerolog.Logger
}

func NewHandler(
	rcService *service.RCService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		rcService: rcService,
		log:       log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public endpoints
	public := r.Group("/api/v1")
	{
		public.POST("/rc/parse", h.parseRC)
		public.GET("/rc/records", h.listRecords)
		public.GET("/rc/records/:id", h.getRecord)
	}

	// Endpoints that change stored records
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.POST("/rc/records", h.createRecord)
		protected.PUT("/rc/records/:id", h.updateRecord)
		protected.DELETE("/rc/records/:id", h.deleteRecord)
	}
}

func (h *Handler) parseRC(c *gin.Context) {
	var req rc.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.rcService.Parse(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) createRecord(c *gin.Context) {
	var req rc.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if req.ClientID == "" {
		req.ClientID = c.GetString(subjectKey)
	}

	stored, err := h.rcService.Save(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(stored))
}

func (h *Handler) getRecord(c *gin.Context) {
	stored, err := h.rcService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stored))
}

func (h *Handler) listRecords(c *gin.Context) {
	var regNo *string
	if r := strings.TrimSpace(c.Query("reg_no")); r != "" {
		regNo = &r
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := parseInt(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := parseInt(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	records, err := h.rcService.List(c.Request.Context(), regNo, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(records))
}

func (h *Handler) updateRecord(c *gin.Context) {
	var req rc.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	stored, err := h.rcService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stored))
}

func (h *Handler) deleteRecord(c *gin.Context) {
	if err := h.rcService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
