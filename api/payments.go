package api

import (
	"encoding/json"
	"net/http"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type initializePaymentRequest struct {
	BookingID int64 `json:"bookingId"`
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/initialize", h.initialize)
	router.POST("/webhook", h.webhook)
}

func (h *PaymentHandler) initialize(c *gin.Context) {
	var req initializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := h.service.Initialize(c.Request.Context(), req.BookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ref": ref})
}

// webhook keeps the raw body: the full event payload is stored with the
// payment, not just the fields we parse.
func (h *PaymentHandler) webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), payment.ConfirmationEvent{
		Event:     payload.Event,
		Reference: payload.Data.Reference,
		Raw:       raw,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Payment processed successfully",
		"paymentId": result.PaymentID,
		"bookingId": result.BookingID,
	})
}
