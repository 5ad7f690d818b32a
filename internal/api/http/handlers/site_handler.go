package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/preferences"
	"github.com/spec-kit/astro-booking/internal/site"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

// SiteHandler serves composed page content.
type SiteHandler struct {
	catalog  *site.Catalog
	resolver *preferences.Resolver
}

// NewSiteHandler constructs handler.
func NewSiteHandler(catalog *site.Catalog, resolver *preferences.Resolver) *SiteHandler {
	return &SiteHandler{catalog: catalog, resolver: resolver}
}

// Page handles GET /api/site/pages/:page.
func (h *SiteHandler) Page(c *fiber.Ctx) error {
	name := c.Params("page")
	state := currentState(c, h.resolver)

	sections, ok := h.catalog.Page(name, state.Language)
	if !ok {
		return apperrors.NewNotFound("page", map[string]any{"page": name})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"page":        name,
			"preferences": state,
			"sections":    sections,
		},
	})
}

// Services handles GET /api/site/services.
func (h *SiteHandler) Services(c *fiber.Ctx) error {
	state := currentState(c, h.resolver)
	return c.JSON(fiber.Map{
		"data":     h.catalog.ServiceViews(state.Language),
		"language": state.Language,
	})
}
