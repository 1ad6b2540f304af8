package api

import (
	"net/http"

	"hotel-concierge/internal/handler/httperr"
	"hotel-concierge/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithDomainError maps the shared error taxonomy onto HTTP statuses.
func abortWithDomainError(c *gin.Context, err error, detail any) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errs.Is(err, errs.ErrNotFound):
		status, msg = http.StatusNotFound, "Reservation not found"
	case errs.Is(err, errs.ErrItemNotFound):
		status, msg = http.StatusNotFound, "Menu item not found"
	case errs.Is(err, errs.ErrInvalidIntent):
		status, msg = http.StatusBadRequest, "Invalid request"
	case errs.Is(err, errs.ErrResourceUnavailable):
		status, msg = http.StatusConflict, "Resource unavailable"
	case errs.Is(err, errs.ErrUnclassifiable):
		status, msg = http.StatusUnprocessableEntity, "Request could not be understood"
	case errs.Is(err, errs.ErrClassificationUnavailable):
		status, msg = http.StatusServiceUnavailable, "Language service unavailable"
	case errs.Is(err, errs.ErrCanceled):
		status, msg = http.StatusRequestTimeout, "Request canceled"
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}
