package email

import (
	"context"
	"fmt"

	"github.com/geovibes/geovibes/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: booking %s for %s (Rp %s) is %s\n",
		event.Email, event.Reference, event.Destination, event.Price, event.Status)
	return nil
}
