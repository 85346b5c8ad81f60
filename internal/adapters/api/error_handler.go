package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"wapi.app/internal/ports"
	errorspkg "wapi.app/pkg/errors"
)

const (
	messageInvalidParameters = "invalid parameters"
	messageCityNotFound      = "city not found"
	messageInternalError     = "Internal server error"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// handleError maps application errors to status codes. Only caller errors reach the
// response body; everything else is logged and reported as a generic failure.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	requestID := ports.F("request_id", c.GetString(requestIDKey))

	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("error", err), requestID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: messageInternalError})
		return
	}

	switch appErr.Type {
	case errorspkg.InvalidParametersError:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: messageInvalidParameters, Details: appErr.Details})
	case errorspkg.NotFoundError:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: messageCityNotFound})
	case errorspkg.InvalidAPIKeyError:
		s.logger.Error("Weather provider rejected the configured API key", ports.F("error", err), requestID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: messageInternalError})
	default:
		s.logger.Error("Weather lookup failed", ports.F("error", err), ports.F("type", appErr.Type.String()), requestID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: messageInternalError})
	}
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	s.logger.Debug("Metrics endpoint called")

	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
