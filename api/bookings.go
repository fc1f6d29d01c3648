package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	VendorID int64  `json:"vendorId"`
	BuyerID  int64  `json:"buyerId"`
	StartISO string `json:"startISO"`
	EndISO   string `json:"endISO"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := parseInstants(req.StartISO, req.EndISO)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.service.Reserve(c.Request.Context(), booking.ReserveInput{
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
		VendorID:       req.VendorID,
		BuyerID:        req.BuyerID,
		Start:          start,
		End:            end,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// Replays return the cached payload verbatim with 200; only the
	// first execution is a 201.
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.Data(status, "application/json", result.Payload)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking.NewBookingResponse(b))
}

// parseInstants accepts ISO-8601 UTC timestamps; absent fields stay the
// zero time so the engine reports them as missing.
func parseInstants(startISO, endISO string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if startISO != "" {
		if start, err = time.Parse(time.RFC3339, startISO); err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("invalid startISO, expected ISO-8601 timestamp")
		}
	}
	if endISO != "" {
		if end, err = time.Parse(time.RFC3339, endISO); err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("invalid endISO, expected ISO-8601 timestamp")
		}
	}
	return start, end, nil
}
