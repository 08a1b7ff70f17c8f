package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/stridelab/wellness-challenges/internal/domain/error"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForError maps domain error kinds onto HTTP status codes.
func statusForError(err error) int {
	switch domainerror.KindOf(err) {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindConflict:
		return http.StatusConflict
	case domainerror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error; non-domain errors become opaque 500s so
// internals don't leak.
func writeError(c *gin.Context, err error) {
	status := statusForError(err)

	var de *domainerror.Error
	if errors.As(err, &de) {
		c.JSON(status, errorResponse{Code: string(de.Code), Message: de.Message})
		return
	}
	c.JSON(status, errorResponse{Code: "INTERNAL", Message: "internal server error"})
}

// writeBindError renders a request decoding/validation failure.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_REQUEST", Message: err.Error()})
}
