package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/transitline/internal/domain"
)

// respondError is the outermost error boundary for all handlers. Field
// errors go back attached to their field, capacity contention maps to 409,
// and anything unrecognized is logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrSeatTaken) ||
			errors.Is(err, domain.ErrNoSeatsAvailable) ||
			errors.Is(err, domain.ErrContention) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": fieldErr.Err.Error(), "field": fieldErr.Field})
	case errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("api: unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
