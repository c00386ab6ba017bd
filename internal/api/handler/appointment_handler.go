package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sajilosewa/booking-system/internal/api/metrics"
	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// AppointmentHandler handles HTTP requests for the appointment lifecycle.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create handles POST /v1/appointments.
//
// @Summary      Book a new appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "appointment_date must be in YYYY-MM-DD format")
	}

	appointment, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		CustomerID:         userID,
		ProviderID:         req.ProviderID,
		ServiceDescription: req.ServiceDescription,
		AppointmentDate:    date,
		AppointmentTime:    req.AppointmentTime,
		EstimatedHours:     req.EstimatedHours,
		CustomerNotes:      req.CustomerNotes,
		Location: ports.LocationInput{
			Address:  req.Location.Address,
			District: req.Location.District,
		},
	})
	if err != nil {
		return err
	}

	metrics.AppointmentsCreatedTotal.WithLabelValues(appointment.ServiceCategory).Inc()
	return c.JSON(http.StatusCreated, appointment)
}

// Get handles GET /v1/appointments/:id.
//
// @Summary      Get an appointment by id
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment id (e.g. APP-M2XK91-0A3F7)"
// @Success      200  {object}  domain.Appointment
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	appointment, err := h.service.Get(c.Request().Context(), ports.GetAppointmentInput{
		AppointmentID: c.Param("id"),
		Role:          role,
		UserID:        userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointment)
}

// ListMine handles GET /v1/appointments/mine — the customer's own bookings.
//
// @Summary      List the authenticated customer's appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  appointmentListResponse
// @Router       /v1/appointments/mine [get]
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListForCustomer(c.Request().Context(), ports.ListAppointmentsInput{
		Role:   role,
		UserID: userID,
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAppointmentListResponse(result))
}

// ListAssigned handles GET /v1/appointments/assigned — the provider's queue.
// Pending and admin-rejected appointments are never included.
//
// @Summary      List appointments assigned to the authenticated provider
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  appointmentListResponse
// @Router       /v1/appointments/assigned [get]
func (h *AppointmentHandler) ListAssigned(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListForProvider(c.Request().Context(), ports.ListAppointmentsInput{
		Role:   role,
		UserID: userID,
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAppointmentListResponse(result))
}

// ListAll handles GET /v1/admin/appointments — every appointment, with
// per-status counts.
//
// @Summary      List all appointments (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Status filter"
// @Param        customer_id  query     string  false  "Scope to one customer"
// @Param        provider_id  query     string  false  "Scope to one provider"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size"
// @Success      200          {object}  appointmentListResponse
// @Router       /v1/admin/appointments [get]
func (h *AppointmentHandler) ListAll(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListAll(c.Request().Context(), ports.ListAppointmentsInput{
		Role:       role,
		UserID:     userID,
		Status:     c.QueryParam("status"),
		CustomerID: c.QueryParam("customer_id"),
		ProviderID: c.QueryParam("provider_id"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAppointmentListResponse(result))
}

// UpdateStatusAsAdmin handles PATCH /v1/admin/appointments/:id/status.
//
// @Summary      Update appointment status (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Appointment id"
// @Param        body  body      statusUpdateRequest  true  "Target status and optional notes"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatusAsAdmin(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.UpdateStatusAsAdmin(c.Request().Context(), ports.AdminStatusUpdateInput{
		AppointmentID: c.Param("id"),
		Status:        domain.AppointmentStatus(req.Status),
		AdminNotes:    req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(appointment.Status), "admin").Inc()
	return c.JSON(http.StatusOK, appointment)
}

// UpdateStatusAsProvider handles PATCH /v1/appointments/:id/status.
//
// @Summary      Update appointment status (provider)
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Appointment id"
// @Param        body  body      statusUpdateRequest  true  "Target status and optional notes"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatusAsProvider(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.UpdateStatusAsProvider(c.Request().Context(), ports.ProviderStatusUpdateInput{
		AppointmentID: c.Param("id"),
		ProviderID:    userID,
		Status:        domain.AppointmentStatus(req.Status),
		ProviderNotes: req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(appointment.Status), "provider").Inc()
	return c.JSON(http.StatusOK, appointment)
}
