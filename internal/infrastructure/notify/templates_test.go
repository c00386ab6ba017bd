package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

func sampleEvent(kind domain.EventKind) domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Kind: kind,
		Appointment: &domain.Appointment{
			ID:                 "APP-TEST-00001",
			ServiceCategory:    "plumbing",
			ServiceDescription: "fix sink",
			AppointmentDate:    time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			AppointmentTime:    "10:00",
			EstimatedHours:     2,
			HourlyRate:         500,
			Price:              1000,
		},
		Customer: &domain.User{Name: "Sita", Email: "sita@example.com"},
		Provider: &domain.User{Name: "Ram", Email: "ram@example.com"},
	}
}

func recipients(msgs []Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.To)
	}
	return out
}

func TestRender_RecipientsPerKind(t *testing.T) {
	cases := []struct {
		kind domain.EventKind
		want []string
	}{
		{domain.EventBookingRequested, []string{"admin@example.com"}},
		{domain.EventAdminApproved, []string{"ram@example.com", "sita@example.com"}},
		{domain.EventAdminRejected, []string{"sita@example.com"}},
		{domain.EventProviderAccepted, []string{"sita@example.com", "admin@example.com"}},
		{domain.EventProviderRejected, []string{"sita@example.com", "admin@example.com"}},
		{domain.EventCompleted, []string{"sita@example.com"}},
		{domain.EventCancelled, []string{"sita@example.com"}},
	}

	for _, tc := range cases {
		msgs := Render(sampleEvent(tc.kind), "admin@example.com")
		got := recipients(msgs)
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected recipients %v, got %v", tc.kind, tc.want, got)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%s: expected recipient[%d]=%s, got %s", tc.kind, i, tc.want[i], got[i])
			}
		}
	}
}

func TestRender_BodyContainsAppointmentDetails(t *testing.T) {
	msgs := Render(sampleEvent(domain.EventAdminApproved), "admin@example.com")
	if len(msgs) == 0 {
		t.Fatal("no messages rendered")
	}

	body := msgs[0].Body
	for _, want := range []string{"APP-TEST-00001", "2026-09-02 at 10:00", "Rs. 500", "Rs. 1000", "fix sink"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRender_SkipsEmptyRecipients(t *testing.T) {
	event := sampleEvent(domain.EventAdminApproved)
	event.Customer = nil

	msgs := Render(event, "admin@example.com")
	if len(msgs) != 1 {
		t.Fatalf("expected only the provider message, got %d", len(msgs))
	}
	if msgs[0].To != "ram@example.com" {
		t.Errorf("unexpected recipient %s", msgs[0].To)
	}
}

func TestRender_ApplicationDecision(t *testing.T) {
	provider := &domain.User{
		Name: "Ram", Email: "ram@example.com",
		Provider: &domain.ProviderProfile{
			Status:          domain.ApprovalRejected,
			RejectionReason: "incomplete documents",
		},
	}

	msgs := Render(domain.AppointmentEvent{
		Kind:     domain.EventApplicationRejected,
		Provider: provider,
	}, "admin@example.com")

	if len(msgs) != 1 || msgs[0].To != "ram@example.com" {
		t.Fatalf("expected one message to the provider, got %+v", msgs)
	}
	if !strings.Contains(msgs[0].Body, "incomplete documents") {
		t.Error("rejection reason missing from body")
	}
}

func TestRender_UnknownKindProducesNothing(t *testing.T) {
	if msgs := Render(domain.AppointmentEvent{Kind: "unknown"}, "admin@example.com"); len(msgs) != 0 {
		t.Errorf("expected no messages for unknown kind, got %d", len(msgs))
	}
}
