package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// StatusOf maps a domain error kind to its HTTP status. A resolved caller
// who is denied gets 403; 401 is reserved for missing or bad credentials.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

// Domain renders err and attaches it to the context for the request logger.
func Domain(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := domain.KindOf(err)
	message := domain.Reason(err)
	if kind == domain.KindStorage {
		message = "storage temporarily unavailable"
	}

	Write(c, StatusOf(err), string(kind), message)
}
