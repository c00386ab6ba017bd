package notify

import (
	"fmt"
	"strings"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Render maps a lifecycle event to the set of outbound messages it produces.
// Recipients that cannot be resolved (nil user, empty email) are simply
// omitted; the dispatcher logs the shortfall.
func Render(event domain.AppointmentEvent, adminEmail string) []Message {
	var msgs []Message
	add := func(to, subject, body string) {
		if to == "" {
			return
		}
		msgs = append(msgs, Message{To: to, Subject: subject, Body: body})
	}

	customer := userEmail(event.Customer)
	provider := userEmail(event.Provider)

	switch event.Kind {
	case domain.EventBookingRequested:
		add(adminEmail, "New Appointment Booking Request",
			appointmentBody(event, "New Appointment Booking Request",
				"Please review this appointment request in the admin dashboard."))

	case domain.EventAdminApproved:
		add(provider, "New Booking Request - Admin Approved",
			appointmentBody(event, "New Booking Request",
				"A booking approved by admin is waiting for your response. Please accept or reject it within 24 hours."))
		add(customer, "Your Appointment has been Approved by Admin",
			appointmentBody(event, "Appointment Approved",
				"Your appointment request has been approved and sent to the service provider. You will be notified once the provider accepts your booking."))

	case domain.EventAdminRejected:
		add(customer, "Appointment Request Declined",
			appointmentBody(event, "Appointment Declined",
				"We regret to inform you that your appointment request has been declined by our admin team."))

	case domain.EventProviderAccepted:
		add(customer, "Booking Confirmed! Provider Accepted Your Appointment",
			appointmentBody(event, "Booking Confirmed",
				"The provider has accepted your booking request. Please be available at the scheduled time and location."))
		add(adminEmail, "Provider Accepted Appointment",
			appointmentBody(event, "Provider Accepted Appointment",
				"The appointment is now confirmed and scheduled."))

	case domain.EventProviderRejected:
		add(customer, "Provider Declined Your Appointment",
			appointmentBody(event, "Appointment Declined by Provider",
				"The provider has declined your booking request. You can book another appointment with a different provider."))
		add(adminEmail, "Provider Declined Appointment",
			appointmentBody(event, "Provider Declined Appointment",
				"You may need to assign this appointment to another provider or contact the customer."))

	case domain.EventCompleted:
		add(customer, "Service Completed - Thank You!",
			appointmentBody(event, "Service Completed",
				"Your service appointment has been marked as completed. Thank you for using our service!"))

	case domain.EventCancelled:
		add(customer, "Appointment Cancelled",
			appointmentBody(event, "Appointment Cancelled",
				"Your appointment has been cancelled. You can book another appointment anytime."))

	case domain.EventApplicationApproved:
		add(provider, "Provider Account Approved",
			applicationBody(event.Provider, "Account Approved!",
				"Great news! Your provider account has been approved. You can now start receiving service appointments from customers."))

	case domain.EventApplicationRejected:
		add(provider, "Provider Account Update",
			applicationBody(event.Provider, "Account Status Update",
				"After careful review, we're unable to approve your provider account at this time. You can update your application and submit it again."))
	}

	return msgs
}

func userEmail(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}

func userName(u *domain.User) string {
	if u == nil {
		return "N/A"
	}
	return u.Name
}

// appointmentBody renders the shared appointment summary layout.
func appointmentBody(event domain.AppointmentEvent, heading, footer string) string {
	a := event.Appointment
	if a == nil {
		return layout(heading, "", footer)
	}

	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>", label, value)
	}
	row("Appointment ID", a.ID)
	row("Customer", userName(event.Customer))
	row("Provider", fmt.Sprintf("%s - %s", userName(event.Provider), a.ServiceCategory))
	row("Service", a.ServiceDescription)
	row("Date", fmt.Sprintf("%s at %s", a.AppointmentDate.Format("2006-01-02"), a.AppointmentTime))
	row("Estimated Hours", fmt.Sprintf("%d", a.EstimatedHours))
	row("Hourly Rate", fmt.Sprintf("Rs. %.0f", a.HourlyRate))
	row("Total Price", fmt.Sprintf("Rs. %.0f", a.Price))
	if a.Location.Address != "" {
		row("Location", a.Location.Address)
	}
	if a.CustomerNotes != "" {
		row("Customer Notes", a.CustomerNotes)
	}
	if a.AdminNotes != "" {
		row("Admin Notes", a.AdminNotes)
	}
	if a.ProviderNotes != "" {
		row("Provider Notes", a.ProviderNotes)
	}

	return layout(heading, b.String(), footer)
}

// applicationBody renders the provider application decision layout.
func applicationBody(provider *domain.User, heading, footer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p>", userName(provider))
	if provider != nil && provider.Provider != nil && provider.Provider.RejectionReason != "" {
		fmt.Fprintf(&b, "<p><strong>Reason:</strong> %s</p>", provider.Provider.RejectionReason)
	}
	return layout(heading, b.String(), footer)
}

func layout(heading, details, footer string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>%s</h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px;">%s</div>
  <p style="margin-top: 20px;">%s</p>
</div>`, heading, details, footer)
}
