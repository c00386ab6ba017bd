package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sajilosewa/booking-system/internal/api/metrics"
	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// ProviderHandler serves provider browsing and the admin application queue.
type ProviderHandler struct {
	service ports.ProviderService
}

func NewProviderHandler(service ports.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

type providerListResponse struct {
	Providers  []*domain.User    `json:"providers"`
	Pagination paginationPayload `json:"pagination"`
}

type approvalUpdateRequest struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected pending unapproved"`
	RejectionReason string `json:"rejection_reason"`
}

func toProviderListResponse(result *ports.ProviderListResult) providerListResponse {
	resp := providerListResponse{
		Providers: result.Items,
		Pagination: paginationPayload{
			Total:      result.Pagination.Total,
			Page:       result.Pagination.Page,
			Limit:      result.Pagination.Limit,
			TotalPages: result.Pagination.TotalPages,
		},
	}
	if result.Items == nil {
		resp.Providers = []*domain.User{}
	}
	return resp
}

// Browse handles GET /v1/providers — approved providers only.
//
// @Summary      Browse approved providers
// @Tags         providers
// @Produce      json
// @Param        category    query     string  false  "Service category slug"
// @Param        min_rating  query     number  false  "Minimum rating"
// @Param        sort        query     string  false  "Sort order: rating, jobs or newest"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  providerListResponse
// @Router       /v1/providers [get]
func (h *ProviderHandler) Browse(c echo.Context) error {
	minRating, _ := strconv.ParseFloat(c.QueryParam("min_rating"), 64)

	result, err := h.service.BrowseApproved(c.Request().Context(), ports.BrowseProvidersInput{
		Category:  c.QueryParam("category"),
		MinRating: minRating,
		Sort:      c.QueryParam("sort"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProviderListResponse(result))
}

// ListApplications handles GET /v1/admin/providers.
//
// @Summary      List provider applications (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Approval status filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  providerListResponse
// @Router       /v1/admin/providers [get]
func (h *ProviderHandler) ListApplications(c echo.Context) error {
	result, err := h.service.ListApplications(c.Request().Context(), ports.ListApplicationsInput{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProviderListResponse(result))
}

// GetApplication handles GET /v1/admin/providers/:id.
//
// @Summary      Get a provider application (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Provider user id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/providers/{id} [get]
func (h *ProviderHandler) GetApplication(c echo.Context) error {
	provider, err := h.service.GetApplication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, provider)
}

// UpdateApproval handles PATCH /v1/admin/providers/:id/approval.
//
// @Summary      Approve or reject a provider application (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Provider user id"
// @Param        body  body      approvalUpdateRequest  true  "Decision"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/providers/{id}/approval [patch]
func (h *ProviderHandler) UpdateApproval(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req approvalUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	provider, err := h.service.UpdateApprovalStatus(c.Request().Context(), ports.UpdateApprovalInput{
		ProviderID:      c.Param("id"),
		AdminID:         adminID,
		Status:          domain.ApprovalStatus(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return err
	}

	metrics.ProviderDecisionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, provider)
}
