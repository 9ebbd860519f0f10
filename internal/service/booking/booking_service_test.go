package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/kafka"
)

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) Append(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookings) FindByID(ctx context.Context, id int64) (*domain.Booking, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1)
}

func (m *MockBookings) ByUser(ctx context.Context, userID int64) []domain.Booking {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Current() (*domain.User, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.User), args.Bool(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value any) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type stubCatalog struct {
	destinations map[int64]domain.Destination
}

func (s stubCatalog) ByID(id int64) (*domain.Destination, bool) {
	d, ok := s.destinations[id]
	if !ok {
		return nil, false
	}
	return &d, true
}

func TestBookingService_Create_Success(t *testing.T) {
	mockBookings := &MockBookings{}
	mockSessions := &MockSessions{}
	mockProducer := &MockProducer{}

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	service := &BookingService{
		bookings:    mockBookings,
		sessions:    mockSessions,
		producer:    mockProducer,
		eventsTopic: "booking_events",
		now:         func() time.Time { return now },
	}

	ctx := context.Background()
	mockBookings.On("Append", ctx, mock.AnythingOfType("domain.Booking")).Return(nil).Once()
	mockSessions.On("Current").Return(&domain.User{ID: 7, Email: "a@x.com"}, true)
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(nil).Once()

	booking, err := service.Create(ctx, CreateInput{
		UserID:        7,
		DestinationID: 3,
		Extra:         map[string]string{"guests": "2"},
	})

	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(7), booking.UserID)
	assert.Equal(t, int64(3), booking.DestinationID)
	assert.Equal(t, domain.ISOTime(now), booking.CreatedAt)
	assert.NotEmpty(t, booking.Reference)
	assert.NotZero(t, booking.ID)

	mockBookings.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Create_EventCarriesDestination(t *testing.T) {
	mockBookings := &MockBookings{}
	mockSessions := &MockSessions{}
	mockProducer := &MockProducer{}

	catalog := stubCatalog{destinations: map[int64]domain.Destination{
		3: {ID: 3, Name: "Pantai Kuta", Price: 50000},
	}}

	service := &BookingService{
		bookings:    mockBookings,
		sessions:    mockSessions,
		catalog:     catalog,
		producer:    mockProducer,
		eventsTopic: "booking_events",
		now:         time.Now,
	}

	ctx := context.Background()
	mockBookings.On("Append", ctx, mock.Anything).Return(nil).Once()
	mockSessions.On("Current").Return(nil, false)

	var published kafka.BookingEvent
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(3).(kafka.BookingEvent)
		}).
		Return(nil).Once()

	_, err := service.Create(ctx, CreateInput{
		UserID:        7,
		DestinationID: 3,
		Extra:         map[string]string{"email": "form@x.com"},
	})

	require.NoError(t, err)
	assert.Equal(t, "booking_created", published.Type)
	assert.Equal(t, "Pantai Kuta", published.Destination)
	assert.Equal(t, "50.000", published.Price)
	assert.Equal(t, "form@x.com", published.Email)
	assert.Equal(t, "pending", published.Status)
}

func TestBookingService_Create_WithoutProducer(t *testing.T) {
	mockBookings := &MockBookings{}
	service := &BookingService{bookings: mockBookings, now: time.Now}

	ctx := context.Background()
	mockBookings.On("Append", ctx, mock.Anything).Return(nil).Once()

	booking, err := service.Create(ctx, CreateInput{UserID: 1, DestinationID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
}

func TestBookingService_Create_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockBookings := &MockBookings{}
	mockSessions := &MockSessions{}
	mockProducer := &MockProducer{}

	service := &BookingService{
		bookings:    mockBookings,
		sessions:    mockSessions,
		producer:    mockProducer,
		eventsTopic: "booking_events",
		now:         time.Now,
	}

	ctx := context.Background()
	mockBookings.On("Append", ctx, mock.Anything).Return(nil).Once()
	mockSessions.On("Current").Return(nil, false)
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).
		Return(errors.New("kafka down")).Once()

	booking, err := service.Create(ctx, CreateInput{UserID: 1, DestinationID: 2})
	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestBookingService_Create_RepositoryError(t *testing.T) {
	mockBookings := &MockBookings{}
	service := &BookingService{bookings: mockBookings, now: time.Now}

	ctx := context.Background()
	expectedErr := errors.New("storage error")
	mockBookings.On("Append", ctx, mock.Anything).Return(expectedErr).Once()

	booking, err := service.Create(ctx, CreateInput{UserID: 1, DestinationID: 2})
	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, booking)
}

func TestBookingService_GetByID(t *testing.T) {
	mockBookings := &MockBookings{}
	service := &BookingService{bookings: mockBookings, now: time.Now}
	ctx := context.Background()

	existing := &domain.Booking{ID: 42, Status: domain.BookingStatusPending}
	mockBookings.On("FindByID", ctx, int64(42)).Return(existing, true).Once()
	mockBookings.On("FindByID", ctx, int64(999)).Return(nil, false).Once()

	booking, err := service.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, existing, booking)

	_, err = service.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_UserBookings(t *testing.T) {
	mockBookings := &MockBookings{}
	mockSessions := &MockSessions{}
	service := &BookingService{bookings: mockBookings, sessions: mockSessions, now: time.Now}
	ctx := context.Background()

	owned := []domain.Booking{{ID: 1, UserID: 7, Status: domain.BookingStatusPending}}
	mockSessions.On("Current").Return(&domain.User{ID: 7}, true).Once()
	mockBookings.On("ByUser", ctx, int64(7)).Return(owned).Once()

	bookings, err := service.UserBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, owned, bookings)
}

func TestBookingService_UserBookings_NoSession(t *testing.T) {
	mockBookings := &MockBookings{}
	mockSessions := &MockSessions{}
	service := &BookingService{bookings: mockBookings, sessions: mockSessions, now: time.Now}

	mockSessions.On("Current").Return(nil, false).Once()

	bookings, err := service.UserBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
	mockBookings.AssertNotCalled(t, "ByUser")
}

func TestCreateInput_UnmarshalJSON(t *testing.T) {
	var input CreateInput
	blob := `{"userId":7,"destinationId":3,"date":"2024-04-01","guests":"2"}`
	require.NoError(t, json.Unmarshal([]byte(blob), &input))
	assert.Equal(t, int64(7), input.UserID)
	assert.Equal(t, int64(3), input.DestinationID)
	assert.Equal(t, map[string]string{"date": "2024-04-01", "guests": "2"}, input.Extra)
}
