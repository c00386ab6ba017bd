package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusAdminApproved, true},
		{StatusPending, StatusAdminRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusProviderAccepted, false},
		{StatusPending, StatusCompleted, false},

		{StatusAdminApproved, StatusProviderAccepted, true},
		{StatusAdminApproved, StatusProviderRejected, true},
		{StatusAdminApproved, StatusCancelled, true},
		{StatusAdminApproved, StatusAdminRejected, false},
		{StatusAdminApproved, StatusCompleted, false},

		{StatusProviderAccepted, StatusCompleted, true},
		{StatusProviderAccepted, StatusCancelled, true},
		{StatusProviderAccepted, StatusProviderRejected, false},

		// Terminal states allow nothing.
		{StatusAdminRejected, StatusCancelled, false},
		{StatusProviderRejected, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{
		StatusAdminRejected, StatusProviderRejected, StatusCompleted, StatusCancelled,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	active := []AppointmentStatus{StatusPending, StatusAdminApproved, StatusProviderAccepted}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		StatusPending, StatusAdminApproved, StatusAdminRejected,
		StatusProviderAccepted, StatusProviderRejected, StatusCompleted, StatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if AppointmentStatus("shipped").Valid() {
		t.Error("unknown status must not be valid")
	}
}
