// Package handler implements the HTTP handlers of the pie shop admin.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pieshop/admin/internal/domain/shared"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/interfaces/http/dto"
	"github.com/pieshop/admin/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// RedirectTo ends a successful write by sending the client back to a list route
func (h *BaseHandler) RedirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 response for a form that failed binding
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleDomainError answers with the status mapped from the error's code.
// Errors outside the domain are logged and hidden behind a 500.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
		_ = c.Error(err)
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		return
	}

	code := dto.NormalizeErrorCode(domainErr.Code)
	c.JSON(dto.GetHTTPStatus(code), domainErrorBody(code, domainErr, getRequestID(c)))
}

// domainErrorBody lists per-field details when the error carries them
func domainErrorBody(code string, err *shared.DomainError, requestID string) dto.Response {
	if len(err.Details) == 0 {
		return dto.NewErrorResponseWithRequestID(code, err.Message, requestID)
	}
	details := make([]dto.ValidationDetail, 0, len(err.Details))
	for _, d := range err.Details {
		details = append(details, dto.ValidationDetail{Field: d.Field, Message: d.Message})
	}
	return dto.NewValidationErrorResponse(code, err.Message, requestID, details)
}

// pathID reads an integer key segment from the route. ok is false when the
// segment is not an integer, which can never name a stored row.
func pathID(c *gin.Context, name string) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
