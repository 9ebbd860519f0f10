package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/kafka"
)

var ErrNotFound = errors.New("booking not found")

type BookingUseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UserBookings(ctx context.Context) ([]domain.Booking, error)
}

type Bookings interface {
	Append(ctx context.Context, booking domain.Booking) error
	FindByID(ctx context.Context, id int64) (*domain.Booking, bool)
	ByUser(ctx context.Context, userID int64) []domain.Booking
}

type Sessions interface {
	Current() (*domain.User, bool)
}

// Destinations resolves catalog entries for event enrichment only; bookings
// are created whether or not the referenced destination exists.
type Destinations interface {
	ByID(id int64) (*domain.Destination, bool)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings    Bookings
	sessions    Sessions
	catalog     Destinations
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type BookingServiceOption func(*BookingService)

// WithProducer enables best-effort booking event publishing.
func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

// WithCatalog lets published events carry the destination name and price.
func WithCatalog(catalog Destinations) BookingServiceOption {
	return func(s *BookingService) {
		s.catalog = catalog
	}
}

func NewBookingService(bookings Bookings, sessions Sessions, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateInput carries the booking form: the user and destination references
// plus whatever else was submitted. Neither reference is checked for
// existence.
type CreateInput struct {
	UserID        int64
	DestinationID int64
	Extra         map[string]string
}

func (in *CreateInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["userId"]; ok {
		if err := json.Unmarshal(v, &in.UserID); err != nil {
			return fmt.Errorf("userId: %w", err)
		}
		delete(raw, "userId")
	}
	if v, ok := raw["destinationId"]; ok {
		if err := json.Unmarshal(v, &in.DestinationID); err != nil {
			return fmt.Errorf("destinationId: %w", err)
		}
		delete(raw, "destinationId")
	}
	in.Extra = domain.DecodeExtra(raw)
	return nil
}

// Create appends a new pending booking and persists the list. A publish
// failure is logged, never surfaced: the booking stands on its own.
func (s *BookingService) Create(ctx context.Context, input CreateInput) (*domain.Booking, error) {
	now := s.now()
	booking := domain.Booking{
		ID:            domain.NewID(now),
		UserID:        input.UserID,
		DestinationID: input.DestinationID,
		Reference:     uuid.NewString(),
		Status:        domain.BookingStatusPending,
		CreatedAt:     domain.ISOTime(now),
		Extra:         input.Extra,
	}

	if err := s.bookings.Append(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", &booking); err != nil {
		slog.Warn("failed to publish booking event", "reference", booking.Reference, "error", err)
	}
	return &booking, nil
}

// GetByID returns the booking with the given id, or ErrNotFound.
func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, ok := s.bookings.FindByID(ctx, id)
	if !ok {
		return nil, ErrNotFound
	}
	return booking, nil
}

// UserBookings returns the session user's bookings, or an empty list when
// nobody is logged in.
func (s *BookingService) UserBookings(ctx context.Context) ([]domain.Booking, error) {
	user, ok := s.sessions.Current()
	if !ok {
		return []domain.Booking{}, nil
	}
	return s.bookings.ByUser(ctx, user.ID), nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}

	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		UserID:        booking.UserID,
		Email:         s.bookingEmail(booking),
		DestinationID: booking.DestinationID,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
	if s.catalog != nil {
		if dest, ok := s.catalog.ByID(booking.DestinationID); ok {
			event.Destination = dest.Name
			event.Price = domain.FormatPrice(dest.Price)
		}
	}
	return s.producer.Publish(ctx, s.eventsTopic, booking.Reference, event)
}

// bookingEmail picks the address to notify: the submitted email field if the
// form had one, otherwise the session user's.
func (s *BookingService) bookingEmail(booking *domain.Booking) string {
	if email, ok := booking.Extra["email"]; ok && email != "" {
		return email
	}
	if user, ok := s.sessions.Current(); ok {
		return user.Email
	}
	return ""
}

var _ BookingUseCase = (*BookingService)(nil)
