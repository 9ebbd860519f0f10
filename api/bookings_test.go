package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, input booking.CreateInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UserBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	body := []byte(`{"userId":7,"destinationId":3,"date":"2024-04-01"}`)
	c, w := newTestContext(t, "POST", "/api/bookings", body)

	created := &domain.Booking{
		ID:            1700000000001,
		UserID:        7,
		DestinationID: 3,
		Reference:     "ref-123",
		Status:        domain.BookingStatusPending,
		CreatedAt:     "2024-03-15T10:00:00.000Z",
		Extra:         map[string]string{"date": "2024-04-01"},
	}
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("booking.CreateInput")).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool           `json:"success"`
		Booking domain.Booking `json:"booking"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, domain.BookingStatusPending, response.Booking.Status)
	assert.Equal(t, int64(7), response.Booking.UserID)
	assert.Equal(t, "2024-04-01", response.Booking.Extra["date"])

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, "GET", "/api/bookings/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	found := &domain.Booking{ID: 42, Status: domain.BookingStatusPending}
	mockService.On("GetByID", c.Request.Context(), int64(42)).Return(found, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandler_get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, "GET", "/api/bookings/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	mockService.On("GetByID", c.Request.Context(), int64(999)).Return(nil, booking.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_get_InvalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, "GET", "/api/bookings/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}

func TestBookingHandler_listMine(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, "GET", "/api/bookings", nil)

	owned := []domain.Booking{{ID: 1, UserID: 7, Status: domain.BookingStatusPending}}
	mockService.On("UserBookings", c.Request.Context()).Return(owned, nil)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
}
