package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sajilosewa/booking-system/internal/api/metrics"
	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
	"github.com/sajilosewa/booking-system/internal/infrastructure/notify"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// DedupGuard abstracts the at-most-once store (Redis).
type DedupGuard interface {
	AlreadySent(ctx context.Context, subjectID, kind string) (bool, error)
	Mark(ctx context.Context, subjectID, kind string) error
}

// Dispatcher consumes lifecycle events and delivers the notifications they
// produce. Events are sharded to a fixed set of workers by subject id, which
// preserves per-appointment ordering. Delivery is best-effort, at-most-once:
// failures are logged and dropped, never retried and never surfaced to the
// code that performed the state transition.
type Dispatcher struct {
	workers    []chan domain.AppointmentEvent
	notifier   ports.Notifier
	guard      DedupGuard
	adminEmail string
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, guard DedupGuard, adminEmail string, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan domain.AppointmentEvent, numWorkers),
		notifier:   notifier,
		guard:      guard,
		adminEmail: adminEmail,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues an event for asynchronous delivery. Non-blocking up to
// channelBuffer capacity per worker.
func (d *Dispatcher) Publish(event domain.AppointmentEvent) {
	idx := d.shardIndex(subjectID(event))
	d.workers[idx] <- event
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// subjectID identifies the entity an event is about, for sharding and dedup.
func subjectID(event domain.AppointmentEvent) string {
	if event.Appointment != nil {
		return event.Appointment.ID
	}
	if event.Provider != nil {
		return event.Provider.ID
	}
	return ""
}

func (d *Dispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, event)
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

// process renders and delivers all messages for one event. Any failure is
// logged and swallowed.
func (d *Dispatcher) process(ctx context.Context, event domain.AppointmentEvent) {
	subject := subjectID(event)
	kind := string(event.Kind)

	if d.guard != nil {
		sent, err := d.guard.AlreadySent(ctx, subject, kind)
		if err != nil {
			d.log.Warn().Err(err).Str("subject", subject).Msg("notification dedup check failed, sending anyway")
		} else if sent {
			d.log.Debug().Str("subject", subject).Str("kind", kind).Msg("duplicate notification skipped")
			return
		}
	}

	messages := notify.Render(event, d.adminEmail)
	if len(messages) == 0 {
		d.log.Warn().Str("subject", subject).Str("kind", kind).Msg("no deliverable recipients for event")
		return
	}

	if d.guard != nil {
		if err := d.guard.Mark(ctx, subject, kind); err != nil {
			d.log.Warn().Err(err).Str("subject", subject).Msg("failed to set notification dedup key")
		}
	}

	for _, m := range messages {
		if err := d.notifier.Send(ctx, m.To, m.Subject, m.Body); err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(kind).Inc()
			d.log.Error().Err(err).
				Str("subject", subject).
				Str("kind", kind).
				Str("to", m.To).
				Msg("notification delivery failed")
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(kind).Inc()
	}

	d.log.Info().Str("subject", subject).Str("kind", kind).Int("messages", len(messages)).Msg("event processed")
}
