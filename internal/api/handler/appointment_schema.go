package handler

import (
	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// --- Request types ---

type locationRequest struct {
	Address  string `json:"address"`
	District string `json:"district"`
}

type createAppointmentRequest struct {
	ProviderID         string          `json:"provider_id" validate:"required"`
	ServiceDescription string          `json:"service_description" validate:"required"`
	AppointmentDate    string          `json:"appointment_date" validate:"required"` // YYYY-MM-DD
	AppointmentTime    string          `json:"appointment_time" validate:"required"`
	EstimatedHours     int             `json:"estimated_hours" validate:"required,min=1,max=24"`
	CustomerNotes      string          `json:"customer_notes"`
	Location           locationRequest `json:"location"`
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// --- Response types ---

type paginationPayload struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type appointmentListResponse struct {
	Appointments []*domain.Appointment `json:"appointments"`
	Pagination   paginationPayload     `json:"pagination"`
	Stats        map[string]int64      `json:"stats,omitempty"`
}

// toAppointmentListResponse maps a service list result to the wire shape.
func toAppointmentListResponse(result *ports.AppointmentListResult) appointmentListResponse {
	resp := appointmentListResponse{
		Appointments: result.Items,
		Pagination: paginationPayload{
			Total:      result.Pagination.Total,
			Page:       result.Pagination.Page,
			Limit:      result.Pagination.Limit,
			TotalPages: result.Pagination.TotalPages,
		},
	}
	if result.Items == nil {
		resp.Appointments = []*domain.Appointment{}
	}
	if len(result.Stats) > 0 {
		resp.Stats = make(map[string]int64, len(result.Stats))
		for status, count := range result.Stats {
			resp.Stats[string(status)] = count
		}
	}
	return resp
}
