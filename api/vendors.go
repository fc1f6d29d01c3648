package api

import (
	"net/http"
	"strconv"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/booking"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/slots"
	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	service booking.BookingUseCase
}

func NewVendorHandler(service booking.BookingUseCase) *VendorHandler {
	return &VendorHandler{service: service}
}

func (h *VendorHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id/availability", h.availability)
}

func (h *VendorHandler) list(c *gin.Context) {
	vendors, err := h.service.ListVendors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) availability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor id"})
		return
	}

	date := c.Query("date")
	if _, _, _, err := slots.ParseDate(date); err != nil {
		writeError(c, err)
		return
	}

	available, err := h.service.Availability(c.Request.Context(), id, date)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]string, 0, len(available))
	for _, t := range available {
		out = append(out, t.UTC().Format(timeLayout))
	}
	c.JSON(http.StatusOK, out)
}
