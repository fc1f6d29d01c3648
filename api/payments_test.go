package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentUseCase is a mock implementation of payment.PaymentUseCase
type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Initialize(ctx context.Context, bookingID int64) (string, error) {
	args := m.Called(ctx, bookingID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentUseCase) Confirm(ctx context.Context, event payment.ConfirmationEvent) (*payment.ConfirmResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ConfirmResult), args.Error(1)
}

func newPaymentTestContext(t *testing.T, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestPaymentHandler_initialize(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body, _ := json.Marshal(initializePaymentRequest{BookingID: 42})
	c, w := newPaymentTestContext(t, "/api/payments/initialize", body)

	mockService.On("Initialize", c.Request.Context(), int64(42)).Return("PAY_abc", nil)

	handler.initialize(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAY_abc", resp["ref"])
}

func TestPaymentHandler_initialize_NotFound(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body, _ := json.Marshal(initializePaymentRequest{BookingID: 99})
	c, w := newPaymentTestContext(t, "/api/payments/initialize", body)

	mockService.On("Initialize", c.Request.Context(), int64(99)).
		Return("", domain.NewNotFoundError("booking not found"))

	handler.initialize(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_webhook(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body := []byte(`{"event":"charge.success","data":{"reference":"PAY_abc"}}`)
	c, w := newPaymentTestContext(t, "/api/payments/webhook", body)

	mockService.On("Confirm", c.Request.Context(), payment.ConfirmationEvent{
		Event:     "charge.success",
		Reference: "PAY_abc",
		Raw:       body,
	}).Return(&payment.ConfirmResult{PaymentID: 7, BookingID: 42}, nil)

	handler.webhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment processed successfully")

	mockService.AssertExpectations(t)
}

func TestPaymentHandler_webhook_AlreadyProcessed(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body := []byte(`{"event":"charge.success","data":{"reference":"PAY_abc"}}`)
	c, w := newPaymentTestContext(t, "/api/payments/webhook", body)

	mockService.On("Confirm", c.Request.Context(), mock.Anything).
		Return(&payment.ConfirmResult{PaymentID: 7, BookingID: 42, AlreadyProcessed: true}, nil)

	handler.webhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment already processed")
}

func TestPaymentHandler_webhook_InvalidPayload(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body := []byte(`{"event":"charge.failed","data":{}}`)
	c, w := newPaymentTestContext(t, "/api/payments/webhook", body)

	mockService.On("Confirm", c.Request.Context(), mock.Anything).
		Return(nil, domain.NewValidationError("invalid webhook payload"))

	handler.webhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_webhook_PaymentNotFound(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	body := []byte(`{"event":"charge.success","data":{"reference":"PAY_missing"}}`)
	c, w := newPaymentTestContext(t, "/api/payments/webhook", body)

	mockService.On("Confirm", c.Request.Context(), mock.Anything).
		Return(nil, domain.NewNotFoundError("payment not found"))

	handler.webhook(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
