package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/common"
)

// errorResponse is the envelope every failed request returns.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps a service error onto the HTTP status and error code of the
// response envelope.
func writeError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, common.ErrorValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
	case errors.Is(err, common.ErrorPayloadTooLarge), errors.As(err, &maxBytes):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "payload_too_large", Message: "uploaded file exceeds the size limit"})
	case errors.Is(err, common.ErrorStorage):
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "storage_error", Message: err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
	}
}
