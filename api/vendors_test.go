package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestVendorHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewVendorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/vendors", nil)

	vendors := []domain.Vendor{
		{ID: 1, Name: "Maes Dining", Timezone: "Africa/Lagos"},
		{ID: 2, Name: "Arike Preorder", Timezone: "Africa/Lagos"},
	}
	mockService.On("ListVendors", c.Request.Context()).Return(vendors, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []domain.Vendor
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, vendors, resp)
}

func TestVendorHandler_availability(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewVendorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("GET", "/api/vendors/4/availability?date=2025-09-25", nil)

	free := []time.Time{
		time.Date(2025, 9, 25, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 25, 8, 30, 0, 0, time.UTC),
	}
	mockService.On("Availability", c.Request.Context(), int64(4), "2025-09-25").Return(free, nil)

	handler.availability(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-09-25T08:00:00.000Z", "2025-09-25T08:30:00.000Z"}, resp)
}

func TestVendorHandler_availability_BadDate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewVendorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("GET", "/api/vendors/4/availability?date=25-09-2025", nil)

	handler.availability(c)

	// Malformed dates never reach the core.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Availability")
}
