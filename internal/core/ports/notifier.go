package ports

import (
	"context"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// Notifier delivers a single outbound message. Implementations own transport
// concerns (SMTP etc.); the core never inspects delivery results beyond the
// returned error, which callers log and drop.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// EventSink accepts lifecycle events for asynchronous, best-effort
// notification delivery. Publish must not block the caller beyond queueing
// and must never return delivery errors into lifecycle code.
type EventSink interface {
	Publish(event domain.AppointmentEvent)
}
