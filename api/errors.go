package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/gin-gonic/gin"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// writeError maps the domain error taxonomy onto HTTP statuses.
// Anything that is not a tagged domain error is an unexpected storage
// failure: logged, surfaced opaquely.
func writeError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		body := gin.H{"error": de.Message}
		if de.MinimumBookingTime != nil {
			body["minimumBookingTime"] = de.MinimumBookingTime.UTC().Format(timeLayout)
		}
		c.JSON(http.StatusBadRequest, body)
	case domain.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": de.Message})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": de.Message})
	default:
		log.Printf("persistence error: %v", de)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
