package domain

import (
	"encoding/json"
	"fmt"
)

type BookingStatus string

// Bookings are created as pending and never transitioned by this service.
const BookingStatusPending BookingStatus = "pending"

// Booking is a user's request to reserve a destination. The user and
// destination references are not checked for existence. Extra holds any
// additional booking form fields (travel date, number of guests, ...).
type Booking struct {
	ID            int64
	UserID        int64
	DestinationID int64
	Reference     string
	Status        BookingStatus
	CreatedAt     string
	Extra         map[string]string
}

func (b Booking) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(b.Extra)+6)
	mergeExtra(m, b.Extra)
	m["id"] = b.ID
	m["userId"] = b.UserID
	m["destinationId"] = b.DestinationID
	m["reference"] = b.Reference
	m["status"] = b.Status
	m["createdAt"] = b.CreatedAt
	return json.Marshal(m)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := takeField(raw, "id", &b.ID); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := takeField(raw, "userId", &b.UserID); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := takeField(raw, "destinationId", &b.DestinationID); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := takeField(raw, "reference", &b.Reference); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := takeField(raw, "status", &b.Status); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := takeField(raw, "createdAt", &b.CreatedAt); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	b.Extra = DecodeExtra(raw)
	return nil
}
