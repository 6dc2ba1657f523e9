package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/middleware"
)

// parsePathID parses a positive integer path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseQueryDate parses an optional YYYY-MM-DD query parameter. A missing
// parameter yields the zero date.
func parseQueryDate(c *gin.Context, param string) (date.Date, error) {
	raw := c.Query(param)
	if raw == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(raw)
	if err != nil {
		return date.Date{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param+": want YYYY-MM-DD")
	}
	return d, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
