package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

type sentMessage struct {
	to      string
	subject string
}

type stubNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
	done    chan struct{} // closed-ish signal: one tick per Send
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{done: make(chan struct{}, 16)}
}

func (n *stubNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.done <- struct{}{}
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentMessage{to: to, subject: subject})
	return nil
}

func (n *stubNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type stubGuard struct {
	seen     map[string]bool
	checkErr error
	markErr  error
}

func newStubGuard() *stubGuard {
	return &stubGuard{seen: make(map[string]bool)}
}

func (g *stubGuard) AlreadySent(_ context.Context, subjectID, kind string) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.seen[subjectID+":"+kind], nil
}

func (g *stubGuard) Mark(_ context.Context, subjectID, kind string) error {
	if g.markErr != nil {
		return g.markErr
	}
	g.seen[subjectID+":"+kind] = true
	return nil
}

func approvedEvent() domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Kind: domain.EventAdminApproved,
		Appointment: &domain.Appointment{
			ID:              "APP-TEST-00001",
			ServiceCategory: "plumbing",
			EstimatedHours:  2,
			HourlyRate:      500,
			Price:           1000,
		},
		Customer: &domain.User{Name: "Sita", Email: "sita@example.com"},
		Provider: &domain.User{Name: "Ram", Email: "ram@example.com"},
	}
}

func TestDispatcher_Process_DeliversAllRecipients(t *testing.T) {
	notifier := newStubNotifier()
	d := NewDispatcher(1, notifier, newStubGuard(), "admin@example.com", zerolog.Nop())

	d.process(context.Background(), approvedEvent())

	// admin_approved notifies provider and customer.
	if notifier.sentCount() != 2 {
		t.Fatalf("expected 2 deliveries, got %d", notifier.sentCount())
	}
	recipients := map[string]bool{}
	for _, m := range notifier.sent {
		recipients[m.to] = true
	}
	if !recipients["sita@example.com"] || !recipients["ram@example.com"] {
		t.Errorf("unexpected recipients: %+v", notifier.sent)
	}
}

func TestDispatcher_Process_SecondDeliverySkipped(t *testing.T) {
	notifier := newStubNotifier()
	d := NewDispatcher(1, notifier, newStubGuard(), "admin@example.com", zerolog.Nop())

	d.process(context.Background(), approvedEvent())
	d.process(context.Background(), approvedEvent())

	if notifier.sentCount() != 2 {
		t.Errorf("duplicate event must be skipped, got %d deliveries", notifier.sentCount())
	}
}

func TestDispatcher_Process_GuardErrorStillDelivers(t *testing.T) {
	notifier := newStubNotifier()
	guard := newStubGuard()
	guard.checkErr = errors.New("redis down")
	d := NewDispatcher(1, notifier, guard, "admin@example.com", zerolog.Nop())

	d.process(context.Background(), approvedEvent())

	if notifier.sentCount() != 2 {
		t.Errorf("a failing dedup check must not block delivery, got %d", notifier.sentCount())
	}
}

func TestDispatcher_Process_NilGuard(t *testing.T) {
	notifier := newStubNotifier()
	d := NewDispatcher(1, notifier, nil, "admin@example.com", zerolog.Nop())

	d.process(context.Background(), approvedEvent())

	if notifier.sentCount() != 2 {
		t.Errorf("dispatcher must work without a dedup guard, got %d", notifier.sentCount())
	}
}

func TestDispatcher_Process_SendFailureSwallowed(t *testing.T) {
	notifier := newStubNotifier()
	notifier.sendErr = errors.New("smtp refused")
	d := NewDispatcher(1, notifier, newStubGuard(), "admin@example.com", zerolog.Nop())

	// Must not panic or propagate; all recipients are still attempted.
	d.process(context.Background(), approvedEvent())

	if len(notifier.done) != 2 {
		t.Errorf("expected 2 delivery attempts despite failures, got %d", len(notifier.done))
	}
}

func TestDispatcher_PublishDeliversAsync(t *testing.T) {
	notifier := newStubNotifier()
	d := NewDispatcher(2, notifier, newStubGuard(), "admin@example.com", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(approvedEvent())

	for i := 0; i < 2; i++ {
		select {
		case <-notifier.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("delivery %d did not happen in time", i+1)
		}
	}
}

func TestDispatcher_ShardIsStablePerSubject(t *testing.T) {
	d := NewDispatcher(4, newStubNotifier(), nil, "admin@example.com", zerolog.Nop())

	first := d.shardIndex("APP-TEST-00001")
	for i := 0; i < 10; i++ {
		if d.shardIndex("APP-TEST-00001") != first {
			t.Fatal("same subject must always map to the same worker")
		}
	}
}

func TestSubjectID_FallsBackToProvider(t *testing.T) {
	event := domain.AppointmentEvent{
		Kind:     domain.EventApplicationApproved,
		Provider: &domain.User{ID: "prov_1", Email: "ram@example.com"},
	}
	if got := subjectID(event); got != "prov_1" {
		t.Errorf("expected provider id as subject, got %q", got)
	}
}
