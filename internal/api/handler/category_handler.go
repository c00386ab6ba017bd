package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

// CategoryHandler serves the public service catalog.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryListResponse struct {
	Categories []*domain.Category `json:"categories"`
}

// List handles GET /v1/categories. Provider counts are recomputed on read.
//
// @Summary      List active service categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  categoryListResponse
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categoryListResponse{Categories: categories})
}

// BySlug handles GET /v1/categories/:slug.
//
// @Summary      Get a service category by slug
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Category slug (e.g. plumbing)"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Router       /v1/categories/{slug} [get]
func (h *CategoryHandler) BySlug(c echo.Context) error {
	category, err := h.service.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}
